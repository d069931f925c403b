package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/vsinha/importdesk/pkg/application/dto"
	"github.com/vsinha/importdesk/pkg/domain/entities"
	"go.uber.org/multierr"
)

// MaterialHeader is the column layout of a materials CSV file
var MaterialHeader = []string{
	"name", "code", "category", "description", "supplier", "origin_country",
	"unit_price", "unit", "min_order_qty", "lead_time_days", "status",
	"tariff_rate", "required_documents",
}

// documentSeparator splits the required_documents column
const documentSeparator = ";"

// Loader reads catalog data from CSV files
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader over the OS filesystem
func NewLoader() *Loader {
	return NewLoaderFs(afero.NewOsFs())
}

// NewLoaderFs creates a loader over fs
func NewLoaderFs(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// LoadMaterials reads material inputs from a CSV file
func (l *Loader) LoadMaterials(filename string) ([]dto.MaterialInput, error) {
	file, err := l.fs.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open materials file %s: %w", filename, err)
	}
	defer file.Close()

	return ReadMaterials(file)
}

// ReadMaterials parses material inputs from r. Every malformed row is
// reported; no inputs are returned unless all rows parse.
func ReadMaterials(r io.Reader) ([]dto.MaterialInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read materials CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("materials CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, MaterialHeader) {
		return nil, fmt.Errorf("materials CSV header mismatch. Expected: %v, Got: %v", MaterialHeader, header)
	}

	var errs error
	inputs := make([]dto.MaterialInput, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(MaterialHeader) {
			errs = multierr.Append(errs, fmt.Errorf("materials CSV row %d: expected %d columns, got %d", i+2, len(MaterialHeader), len(record)))
			continue
		}

		input, err := parseMaterial(record)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("materials CSV row %d: %w", i+2, err))
			continue
		}
		inputs = append(inputs, input)
	}
	if errs != nil {
		return nil, errs
	}

	return inputs, nil
}

// WriteMaterials writes materials in the layout ReadMaterials accepts
func WriteMaterials(w io.Writer, materials []*entities.Material) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(MaterialHeader); err != nil {
		return err
	}
	for _, m := range materials {
		record := []string{
			m.Name,
			m.Code,
			string(m.Category),
			m.Description,
			m.Supplier,
			m.OriginCountry,
			m.UnitPrice.String(),
			string(m.Unit),
			strconv.Itoa(m.MinOrderQty),
			strconv.Itoa(m.LeadTimeDays),
			string(m.Status),
			m.TariffRate.String(),
			strings.Join(m.RequiredDocuments, documentSeparator),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseMaterial(record []string) (dto.MaterialInput, error) {
	category, err := entities.ParseCategory(record[2])
	if err != nil {
		return dto.MaterialInput{}, err
	}

	unitPrice, err := decimal.NewFromString(strings.TrimSpace(record[6]))
	if err != nil {
		return dto.MaterialInput{}, fmt.Errorf("invalid unit_price: %s", record[6])
	}

	unit, err := entities.ParseUnit(record[7])
	if err != nil {
		return dto.MaterialInput{}, err
	}

	minOrderQty, err := strconv.Atoi(strings.TrimSpace(record[8]))
	if err != nil {
		return dto.MaterialInput{}, fmt.Errorf("invalid min_order_qty: %s", record[8])
	}

	leadTimeDays, err := strconv.Atoi(strings.TrimSpace(record[9]))
	if err != nil {
		return dto.MaterialInput{}, fmt.Errorf("invalid lead_time_days: %s", record[9])
	}

	status, err := entities.ParseMaterialStatus(record[10])
	if err != nil {
		return dto.MaterialInput{}, err
	}

	tariffRate, err := decimal.NewFromString(strings.TrimSpace(record[11]))
	if err != nil {
		return dto.MaterialInput{}, fmt.Errorf("invalid tariff_rate: %s", record[11])
	}

	var documents []string
	if strings.TrimSpace(record[12]) != "" {
		documents = strings.Split(record[12], documentSeparator)
	}

	return dto.MaterialInput{
		Name:              record[0],
		Code:              record[1],
		Category:          category,
		Description:       record[3],
		Supplier:          record[4],
		OriginCountry:     record[5],
		UnitPrice:         unitPrice,
		Unit:              unit,
		MinOrderQty:       minOrderQty,
		LeadTimeDays:      leadTimeDays,
		Status:            status,
		TariffRate:        tariffRate,
		RequiredDocuments: documents,
	}, nil
}
