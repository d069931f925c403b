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
	"github.com/vsinha/importdesk/pkg/infrastructure/repositories/csv"
)

// materialFlags binds the editable material attributes to command flags
type materialFlags struct {
	name         string
	code         string
	category     string
	description  string
	supplier     string
	origin       string
	unitPrice    string
	unit         string
	minOrderQty  int
	leadTimeDays int
	status       string
	tariffRate   string
	documents    []string
}

func (f *materialFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.name, "name", "", "Material name")
	flags.StringVar(&f.code, "code", "", "Supplier SKU")
	flags.StringVar(&f.category, "category", "", "Category: Metals, Chemicals, Textiles, Electronics, Construction, Other")
	flags.StringVar(&f.description, "description", "", "Free-text description")
	flags.StringVar(&f.supplier, "supplier", "", "Supplier name")
	flags.StringVar(&f.origin, "origin", "", "Origin country")
	flags.StringVar(&f.unitPrice, "price", "", "Unit price in USD")
	flags.StringVar(&f.unit, "unit", "", "Unit of measure: kg, ton, meter, piece, liter, cubic-meter")
	flags.IntVar(&f.minOrderQty, "min-qty", 0, "Minimum order quantity")
	flags.IntVar(&f.leadTimeDays, "lead-time", 0, "Lead time in days")
	flags.StringVar(&f.status, "status", string(entities.MaterialActive), "Status: Active, Discontinued, InProcess")
	flags.StringVar(&f.tariffRate, "tariff", "0", "Tariff rate in percent")
	flags.StringSliceVar(&f.documents, "doc", nil, "Required document name (repeatable)")
}

// apply overlays the flags that were set on the command line onto input
func (f *materialFlags) apply(flags *pflag.FlagSet, input *dto.MaterialInput, all bool) error {
	var errs []string
	changed := func(name string) bool { return all || flags.Changed(name) }

	if changed("name") {
		input.Name = f.name
	}
	if changed("code") {
		input.Code = f.code
	}
	if changed("category") {
		category, err := entities.ParseCategory(f.category)
		if err != nil {
			errs = append(errs, err.Error())
		}
		input.Category = category
	}
	if changed("description") {
		input.Description = f.description
	}
	if changed("supplier") {
		input.Supplier = f.supplier
	}
	if changed("origin") {
		input.OriginCountry = f.origin
	}
	if changed("price") {
		price, err := decimal.NewFromString(strings.TrimSpace(f.unitPrice))
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid price %q", f.unitPrice))
		}
		input.UnitPrice = price
	}
	if changed("unit") {
		unit, err := entities.ParseUnit(f.unit)
		if err != nil {
			errs = append(errs, err.Error())
		}
		input.Unit = unit
	}
	if changed("min-qty") {
		input.MinOrderQty = f.minOrderQty
	}
	if changed("lead-time") {
		input.LeadTimeDays = f.leadTimeDays
	}
	if changed("status") {
		status, err := entities.ParseMaterialStatus(f.status)
		if err != nil {
			errs = append(errs, err.Error())
		}
		input.Status = status
	}
	if changed("tariff") {
		rate, err := decimal.NewFromString(strings.TrimSpace(f.tariffRate))
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid tariff %q", f.tariffRate))
		}
		input.TariffRate = rate
	}
	if changed("doc") {
		input.RequiredDocuments = f.documents
	}

	if len(errs) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid material flags").WithDetails(errs)
	}
	return nil
}

func inputFromMaterial(m *entities.Material) dto.MaterialInput {
	return dto.MaterialInput{
		Name:              m.Name,
		Code:              m.Code,
		Category:          m.Category,
		Description:       m.Description,
		Supplier:          m.Supplier,
		OriginCountry:     m.OriginCountry,
		UnitPrice:         m.UnitPrice,
		Unit:              m.Unit,
		MinOrderQty:       m.MinOrderQty,
		LeadTimeDays:      m.LeadTimeDays,
		Status:            m.Status,
		TariffRate:        m.TariffRate,
		RequiredDocuments: m.RequiredDocuments,
	}
}

// resolveMaterial finds a material by id, falling back to its code
func (a *app) resolveMaterial(ref string) (*entities.Material, error) {
	material, err := a.tracker.GetMaterial(entities.MaterialID(ref))
	if err == nil {
		return material, nil
	}
	for _, m := range a.tracker.ListMaterials() {
		if strings.EqualFold(m.Code, ref) {
			return m, nil
		}
	}
	return nil, err
}

func newMaterialsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "materials",
		Aliases: []string{"material", "m"},
		Short:   "Manage the material catalog",
	}
	cmd.AddCommand(
		newMaterialsAddCommand(a),
		newMaterialsUpdateCommand(a),
		newMaterialsListCommand(a),
		newMaterialsShowCommand(a),
		newMaterialsImportCommand(a),
		newMaterialsHistoryCommand(a),
	)
	return cmd
}

func newMaterialsAddCommand(a *app) *cobra.Command {
	var flags materialFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a material in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input dto.MaterialInput
			if err := flags.apply(cmd.Flags(), &input, true); err != nil {
				return err
			}
			material, err := a.tracker.RegisterMaterial(cmd.Context(), input)
			if err != nil {
				return err
			}
			return a.render(cmd, material)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newMaterialsUpdateCommand(a *app) *cobra.Command {
	var flags materialFlags
	cmd := &cobra.Command{
		Use:   "update <id|code>",
		Short: "Change a material's attributes; existing orders are not affected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			material, err := a.resolveMaterial(args[0])
			if err != nil {
				return err
			}
			input := inputFromMaterial(material)
			if err := flags.apply(cmd.Flags(), &input, false); err != nil {
				return err
			}
			updated, err := a.tracker.UpdateMaterial(cmd.Context(), material.ID, input)
			if err != nil {
				return err
			}
			return a.render(cmd, updated)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newMaterialsListCommand(a *app) *cobra.Command {
	var filter dto.MaterialFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog materials, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := normalizeFilter("category", filter.Category, func(v string) (string, error) {
				c, err := entities.ParseCategory(v)
				return string(c), err
			})
			if err != nil {
				return err
			}
			status, err := normalizeFilter("status", filter.Status, func(v string) (string, error) {
				st, err := entities.ParseMaterialStatus(v)
				return string(st), err
			})
			if err != nil {
				return err
			}
			filter.Category, filter.Status = category, status
			return a.render(cmd, a.tracker.FilterMaterials(filter))
		},
	}
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Match name, code or supplier (case-insensitive)")
	cmd.Flags().StringVar(&filter.Category, "category", dto.FilterAll, "Category to keep, or all")
	cmd.Flags().StringVar(&filter.Status, "status", dto.FilterAll, "Status to keep, or all")
	return cmd
}

func newMaterialsShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|code>",
		Short: "Show one material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			material, err := a.resolveMaterial(args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, material)
		},
	}
}

func newMaterialsImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Register every material in a CSV file, or none if any row is invalid",
		Long: fmt.Sprintf(`Register every material in a CSV file. The header must be:

  %s

required_documents is a semicolon-separated list. Nothing is registered
unless every row is valid.`, strings.Join(csv.MaterialHeader, ",")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := csv.NewLoader().LoadMaterials(args[0])
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "load materials")
			}
			materials, err := a.tracker.ImportMaterials(cmd.Context(), inputs)
			if err != nil {
				return err
			}
			return a.render(cmd, materials)
		},
	}
}

func newMaterialsHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id|code>",
		Short: "Show the recorded changes of a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			material, err := a.resolveMaterial(args[0])
			if err != nil {
				return err
			}
			history, err := a.tracker.MaterialHistory(material.ID)
			if err != nil {
				return err
			}
			return a.render(cmd, history)
		},
	}
}

// normalizeFilter maps a user-typed filter value to its canonical enum
// spelling; empty and "all" pass through unchanged
func normalizeFilter(field, value string, parse func(string) (string, error)) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, dto.FilterAll) {
		return dto.FilterAll, nil
	}
	canonical, err := parse(trimmed)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid filter").
			WithDetails(map[string]string{field: err.Error()})
	}
	return canonical, nil
}
