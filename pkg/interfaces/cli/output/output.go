package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vsinha/importdesk/pkg/application/dto"
	"github.com/vsinha/importdesk/pkg/domain/entities"
	"github.com/vsinha/importdesk/pkg/domain/services"
	"github.com/vsinha/importdesk/pkg/infrastructure/events"
	csvrepo "github.com/vsinha/importdesk/pkg/infrastructure/repositories/csv"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Config holds configuration for output generation
type Config struct {
	Format string
	Out    io.Writer
}

// ValidFormat reports whether format is one Generate understands
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatCSV:
		return true
	}
	return false
}

// Generate renders a catalog listing, order log, single record, quote or
// dashboard summary in the configured format
func Generate(value any, config Config) error {
	switch config.Format {
	case FormatText:
		return generateTextOutput(value, config.Out)
	case FormatJSON:
		return generateJSONOutput(value, config.Out)
	case FormatCSV:
		return generateCSVOutput(value, config.Out)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateJSONOutput(value any, w io.Writer) error {
	jsonData, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func generateTextOutput(value any, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch v := value.(type) {
	case []*entities.Material:
		writeMaterialTable(tw, v)
	case *entities.Material:
		writeMaterialDetail(tw, v)
	case []*entities.ImportOrder:
		writeOrderTable(tw, v)
	case *entities.ImportOrder:
		writeOrderDetail(tw, v)
	case *services.Quote:
		writeQuote(tw, v)
	case dto.DashboardStats:
		writeStats(tw, v)
	case []events.Event:
		writeHistory(tw, v)
	default:
		return fmt.Errorf("no text layout for %T", value)
	}
	return tw.Flush()
}

func writeMaterialTable(w io.Writer, materials []*entities.Material) {
	if len(materials) == 0 {
		fmt.Fprintln(w, "No materials found.")
		return
	}
	fmt.Fprintln(w, "ID\tNAME\tCODE\tCATEGORY\tSUPPLIER\tORIGIN\tPRICE\tMIN QTY\tLEAD\tTARIFF\tSTATUS")
	for _, m := range materials {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t$%s/%s\t%d\t%dd\t%s%%\t%s\n",
			m.ID, m.Name, m.Code, m.Category, m.Supplier, m.OriginCountry,
			m.UnitPrice.StringFixed(2), m.Unit, m.MinOrderQty, m.LeadTimeDays,
			m.TariffRate.String(), m.Status)
	}
}

func writeMaterialDetail(w io.Writer, m *entities.Material) {
	fmt.Fprintf(w, "ID:\t%s\n", m.ID)
	fmt.Fprintf(w, "Name:\t%s\n", m.Name)
	fmt.Fprintf(w, "Code:\t%s\n", m.Code)
	fmt.Fprintf(w, "Category:\t%s\n", m.Category)
	if m.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", m.Description)
	}
	fmt.Fprintf(w, "Supplier:\t%s (%s)\n", m.Supplier, m.OriginCountry)
	fmt.Fprintf(w, "Unit price:\t$%s per %s\n", m.UnitPrice.StringFixed(2), m.Unit)
	fmt.Fprintf(w, "Minimum order:\t%d %s\n", m.MinOrderQty, m.Unit)
	fmt.Fprintf(w, "Lead time:\t%d days\n", m.LeadTimeDays)
	fmt.Fprintf(w, "Tariff rate:\t%s%%\n", m.TariffRate.String())
	fmt.Fprintf(w, "Status:\t%s\n", m.Status)
	fmt.Fprintf(w, "Registered:\t%s\n", m.RegisteredOn)
	if len(m.RequiredDocuments) > 0 {
		fmt.Fprintf(w, "Required documents:\t%s\n", strings.Join(m.RequiredDocuments, ", "))
	}
}

func writeOrderTable(w io.Writer, orders []*entities.ImportOrder) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders found.")
		return
	}
	fmt.Fprintln(w, "NUMBER\tMATERIAL\tQTY\tTOTAL\tORDERED\tETA\tSTATUS")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%d %s\t$%s\t%s\t%s\t%s\n",
			o.OrderNumber, o.Material.Name, o.Quantity, o.Material.Unit,
			o.TotalPrice.StringFixed(2), o.OrderDate, o.EstimatedDelivery, o.Status)
	}
}

func writeOrderDetail(w io.Writer, o *entities.ImportOrder) {
	fmt.Fprintf(w, "Order:\t%s\n", o.OrderNumber)
	fmt.Fprintf(w, "ID:\t%s\n", o.ID)
	fmt.Fprintf(w, "Material:\t%s (%s)\n", o.Material.Name, o.Material.Code)
	fmt.Fprintf(w, "Supplier:\t%s\n", o.Material.Supplier)
	if o.SupplierContact != "" {
		fmt.Fprintf(w, "Contact:\t%s\n", o.SupplierContact)
	}
	fmt.Fprintf(w, "Quantity:\t%d %s\n", o.Quantity, o.Material.Unit)
	fmt.Fprintf(w, "Logistics:\t$%s\n", o.LogisticsCost.StringFixed(2))
	fmt.Fprintf(w, "Tariff:\t$%s\n", o.TariffCost.StringFixed(2))
	fmt.Fprintf(w, "Total:\t$%s\n", o.TotalPrice.StringFixed(2))
	fmt.Fprintf(w, "Ordered:\t%s\n", o.OrderDate)
	fmt.Fprintf(w, "Estimated delivery:\t%s\n", o.EstimatedDelivery)
	fmt.Fprintf(w, "Status:\t%s\n", o.Status)
	if len(o.UploadedDocuments) > 0 {
		fmt.Fprintf(w, "Documents:\t%s\n", strings.Join(o.UploadedDocuments, ", "))
	}
	if missing := missingDocuments(o); len(missing) > 0 {
		fmt.Fprintf(w, "Missing documents:\t%s\n", strings.Join(missing, ", "))
	}
	if o.Notes != "" {
		fmt.Fprintf(w, "Notes:\t%s\n", o.Notes)
	}
}

// missingDocuments lists required documents with no upload of the same name
func missingDocuments(o *entities.ImportOrder) []string {
	uploaded := make(map[string]bool, len(o.UploadedDocuments))
	for _, doc := range o.UploadedDocuments {
		uploaded[strings.ToLower(doc)] = true
	}
	var missing []string
	for _, doc := range o.Material.RequiredDocuments {
		if !uploaded[strings.ToLower(doc)] {
			missing = append(missing, doc)
		}
	}
	return missing
}

func writeQuote(w io.Writer, q *services.Quote) {
	fmt.Fprintf(w, "Subtotal:\t$%s\n", q.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "Tariff:\t$%s\n", q.TariffCost.StringFixed(2))
	fmt.Fprintf(w, "Logistics:\t$%s\n", q.LogisticsCost.StringFixed(2))
	fmt.Fprintf(w, "Total:\t$%s\n", q.TotalPrice.StringFixed(2))
	fmt.Fprintf(w, "Estimated delivery:\t%s\n", q.EstimatedDelivery)
}

func writeStats(w io.Writer, s dto.DashboardStats) {
	fmt.Fprintf(w, "Materials:\t%d\n", s.MaterialsCount)
	fmt.Fprintf(w, "Orders:\t%d\n", s.OrdersCount)
	fmt.Fprintf(w, "Active orders:\t%d\n", s.ActiveOrders)
	fmt.Fprintf(w, "Pending orders:\t%d\n", s.PendingOrders)
	fmt.Fprintf(w, "Completed orders:\t%d\n", s.CompletedOrders)
	fmt.Fprintf(w, "Total cost:\t$%s\n", s.TotalCost.StringFixed(2))
}

func writeHistory(w io.Writer, history []events.Event) {
	if len(history) == 0 {
		fmt.Fprintln(w, "No history recorded.")
		return
	}
	fmt.Fprintln(w, "TIME\tSTREAM\t#\tEVENT\tDETAILS")
	for _, e := range history {
		summary, err := events.Describe(e)
		if err != nil {
			summary = string(e.Data())
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			e.Timestamp().Format(time.RFC3339), e.StreamID(), e.Version(), e.Type(), summary)
	}
}

func generateCSVOutput(value any, w io.Writer) error {
	switch v := value.(type) {
	case []*entities.Material:
		return csvrepo.WriteMaterials(w, v)
	case *entities.Material:
		return csvrepo.WriteMaterials(w, []*entities.Material{v})
	case []*entities.ImportOrder:
		return writeOrdersCSV(w, v)
	case *entities.ImportOrder:
		return writeOrdersCSV(w, []*entities.ImportOrder{v})
	case *services.Quote:
		return writeRecords(w, [][]string{
			{"subtotal", "tariff_cost", "logistics_cost", "total_price", "estimated_delivery"},
			{v.Subtotal.String(), v.TariffCost.String(), v.LogisticsCost.String(), v.TotalPrice.String(), v.EstimatedDelivery.String()},
		})
	case dto.DashboardStats:
		return writeRecords(w, [][]string{
			{"materials_count", "orders_count", "active_orders", "pending_orders", "completed_orders", "total_cost"},
			{
				strconv.Itoa(v.MaterialsCount), strconv.Itoa(v.OrdersCount), strconv.Itoa(v.ActiveOrders),
				strconv.Itoa(v.PendingOrders), strconv.Itoa(v.CompletedOrders), v.TotalCost.String(),
			},
		})
	case []events.Event:
		records := [][]string{{"version", "time", "type", "stream", "data"}}
		for _, e := range v {
			records = append(records, []string{
				strconv.Itoa(e.Version()), e.Timestamp().Format(time.RFC3339), e.Type(), e.StreamID(), string(e.Data()),
			})
		}
		return writeRecords(w, records)
	default:
		return fmt.Errorf("no CSV layout for %T", value)
	}
}

func writeOrdersCSV(w io.Writer, orders []*entities.ImportOrder) error {
	records := [][]string{{
		"order_number", "material_id", "material_name", "quantity", "unit", "order_date",
		"estimated_delivery", "status", "logistics_cost", "tariff_cost", "total_price", "supplier_contact",
	}}
	for _, o := range orders {
		records = append(records, []string{
			o.OrderNumber, string(o.MaterialID), o.Material.Name, strconv.Itoa(o.Quantity),
			string(o.Material.Unit), o.OrderDate.String(), o.EstimatedDelivery.String(),
			string(o.Status), o.LogisticsCost.String(), o.TariffCost.String(), o.TotalPrice.String(),
			o.SupplierContact,
		})
	}
	return writeRecords(w, records)
}

func writeRecords(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
