package dto

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vsinha/importdesk/pkg/domain/entities"
)

// MaterialInput carries every material attribute the caller supplies.
// Id and registration date are assigned on registration.
type MaterialInput struct {
	Name              string                  `json:"name" validate:"required,max=200"`
	Code              string                  `json:"code" validate:"required,max=64"`
	Category          entities.Category       `json:"category" validate:"required,oneof=Metals Chemicals Textiles Electronics Construction Other"`
	Description       string                  `json:"description" validate:"max=2000"`
	Supplier          string                  `json:"supplier" validate:"required,max=200"`
	OriginCountry     string                  `json:"originCountry" validate:"required,max=100"`
	UnitPrice         decimal.Decimal         `json:"unitPrice" validate:"gte=0"`
	Unit              entities.Unit           `json:"unit" validate:"required,oneof=kg ton meter piece liter cubic-meter"`
	MinOrderQty       int                     `json:"minOrderQty" validate:"min=1"`
	LeadTimeDays      int                     `json:"leadTimeDays" validate:"min=1"`
	Status            entities.MaterialStatus `json:"status" validate:"required,oneof=Active Discontinued InProcess"`
	TariffRate        decimal.Decimal         `json:"tariffRate" validate:"gte=0,lte=100"`
	RequiredDocuments []string                `json:"requiredDocuments" validate:"dive,max=200"`
}

// Normalize trims text fields and drops blank document names
func (in *MaterialInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	in.Description = strings.TrimSpace(in.Description)
	in.Supplier = strings.TrimSpace(in.Supplier)
	in.OriginCountry = strings.TrimSpace(in.OriginCountry)

	documents := make([]string, 0, len(in.RequiredDocuments))
	for _, doc := range in.RequiredDocuments {
		if trimmed := strings.TrimSpace(doc); trimmed != "" {
			documents = append(documents, trimmed)
		}
	}
	in.RequiredDocuments = documents
}

// OrderInput carries the caller-supplied fields of a new import order.
// Zero OrderDate and Status are filled with defaults; Quantity never is.
type OrderInput struct {
	Quantity        int                  `json:"quantity" validate:"gte=0"`
	OrderDate       entities.Date        `json:"orderDate"`
	Status          entities.OrderStatus `json:"status" validate:"omitempty,oneof=Quoting Ordered InTransit InCustoms Delivered Cancelled"`
	SupplierContact string               `json:"supplierContact" validate:"max=200"`
	LogisticsCost   decimal.Decimal      `json:"logisticsCost" validate:"gte=0"`
	Notes           string               `json:"notes" validate:"max=2000"`
}

// ApplyDefaults fills the order date and status when unset
func (in *OrderInput) ApplyDefaults(today entities.Date) {
	if in.OrderDate.IsZero() {
		in.OrderDate = today
	}
	if in.Status == "" {
		in.Status = entities.Quoting
	}
	in.SupplierContact = strings.TrimSpace(in.SupplierContact)
	in.Notes = strings.TrimSpace(in.Notes)
}
