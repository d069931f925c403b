package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vsinha/importdesk/pkg/application/dto"
	"github.com/vsinha/importdesk/pkg/domain/entities"
	pkgerrors "github.com/vsinha/importdesk/pkg/errors"
)

type orderFlags struct {
	material  string
	quantity  int
	date      string
	status    string
	contact   string
	logistics string
	notes     string
}

func (f *orderFlags) register(flags *pflag.FlagSet, withRecordFields bool) {
	flags.StringVarP(&f.material, "material", "m", "", "Material id or code")
	flags.IntVar(&f.quantity, "qty", 0, "Quantity (defaults to the material's minimum)")
	flags.StringVar(&f.date, "date", "", "Order date YYYY-MM-DD (defaults to today)")
	flags.StringVar(&f.logistics, "logistics", "0", "Logistics cost in USD")
	if withRecordFields {
		flags.StringVar(&f.status, "status", "", "Initial status (defaults to Quoting)")
		flags.StringVar(&f.contact, "contact", "", "Supplier contact")
		flags.StringVar(&f.notes, "notes", "", "Notes")
	}
	_ = cobra.MarkFlagRequired(flags, "material")
}

// input builds the order input; an omitted --qty takes the material's
// minimum order quantity, an explicit one is passed through unchanged
func (f *orderFlags) input(flags *pflag.FlagSet, material *entities.Material) (dto.OrderInput, error) {
	details := map[string]string{}
	quantity := f.quantity
	if !flags.Changed("qty") {
		quantity = material.MinOrderQty
	}
	input := dto.OrderInput{
		Quantity:        quantity,
		SupplierContact: f.contact,
		Notes:           f.notes,
	}
	if f.date != "" {
		date, err := entities.ParseDate(f.date)
		if err != nil {
			details["orderDate"] = "must be YYYY-MM-DD"
		}
		input.OrderDate = date
	}
	if f.status != "" {
		status, err := entities.ParseOrderStatus(f.status)
		if err != nil {
			details["status"] = err.Error()
		}
		input.Status = status
	}
	logistics, err := decimal.NewFromString(strings.TrimSpace(f.logistics))
	if err != nil {
		details["logisticsCost"] = fmt.Sprintf("invalid amount %q", f.logistics)
	}
	input.LogisticsCost = logistics

	if len(details) > 0 {
		return dto.OrderInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order flags").WithDetails(details)
	}
	return input, nil
}

// resolveOrder finds an order by its IMP number, falling back to its id
func (a *app) resolveOrder(ref string) (*entities.ImportOrder, error) {
	order, err := a.tracker.FindOrderByNumber(ref)
	if err == nil {
		return order, nil
	}
	if byID, idErr := a.tracker.GetOrder(entities.OrderID(ref)); idErr == nil {
		return byID, nil
	}
	return nil, err
}

func newOrdersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order", "o"},
		Short:   "Place and track import orders",
	}
	cmd.AddCommand(
		newOrdersCreateCommand(a),
		newOrdersQuoteCommand(a),
		newOrdersListCommand(a),
		newOrdersShowCommand(a),
		newOrdersStatusCommand(a),
		newOrdersAttachCommand(a),
		newOrdersHistoryCommand(a),
	)
	return cmd
}

func newOrdersCreateCommand(a *app) *cobra.Command {
	var flags orderFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Place an import order for a catalog material",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			material, err := a.resolveMaterial(flags.material)
			if err != nil {
				return err
			}
			input, err := flags.input(cmd.Flags(), material)
			if err != nil {
				return err
			}
			order, err := a.tracker.CreateOrder(cmd.Context(), material.ID, input)
			if err != nil {
				return err
			}
			return a.render(cmd, order)
		},
	}
	flags.register(cmd.Flags(), true)
	return cmd
}

func newOrdersQuoteCommand(a *app) *cobra.Command {
	var flags orderFlags
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Preview an order's landed cost and delivery date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			material, err := a.resolveMaterial(flags.material)
			if err != nil {
				return err
			}
			input, err := flags.input(cmd.Flags(), material)
			if err != nil {
				return err
			}
			quote, err := a.tracker.QuoteOrder(material.ID, input)
			if err != nil {
				return err
			}
			return a.render(cmd, quote)
		},
	}
	flags.register(cmd.Flags(), false)
	return cmd
}

func newOrdersListCommand(a *app) *cobra.Command {
	var filter dto.OrderFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List import orders, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := normalizeFilter("status", filter.Status, func(v string) (string, error) {
				st, err := entities.ParseOrderStatus(v)
				return string(st), err
			})
			if err != nil {
				return err
			}
			filter.Status = status
			return a.render(cmd, a.tracker.FilterOrders(filter))
		},
	}
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Match order number or material name (case-insensitive)")
	cmd.Flags().StringVar(&filter.Status, "status", dto.FilterAll, "Status to keep, or all")
	return cmd
}

func newOrdersShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-number>",
		Short: "Show one order with its material snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.resolveOrder(args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, order)
		},
	}
}

func newOrdersStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-number> <status>",
		Short: "Move an order to a new status",
		Long: `Move an order to a new status. Valid statuses are Quoting, Ordered,
InTransit, InCustoms, Delivered and Cancelled. Any status may follow any other.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.resolveOrder(args[0])
			if err != nil {
				return err
			}
			status, err := entities.ParseOrderStatus(args[1])
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "update order status")
			}
			updated, err := a.tracker.UpdateOrderStatus(cmd.Context(), order.ID, status)
			if err != nil {
				return err
			}
			return a.render(cmd, updated)
		},
	}
}

func newOrdersAttachCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <order-number> <document>...",
		Short: "Record uploaded documents on an order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.resolveOrder(args[0])
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				if order, err = a.tracker.AttachOrderDocument(cmd.Context(), order.ID, name); err != nil {
					return err
				}
			}
			return a.render(cmd, order)
		},
	}
}

func newOrdersHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <order-number>",
		Short: "Show the recorded changes of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.resolveOrder(args[0])
			if err != nil {
				return err
			}
			history, err := a.tracker.OrderHistory(order.ID)
			if err != nil {
				return err
			}
			return a.render(cmd, history)
		},
	}
}
