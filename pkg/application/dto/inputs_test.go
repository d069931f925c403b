package dto

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/importdesk/pkg/domain/entities"
	pkgerrors "github.com/vsinha/importdesk/pkg/errors"
)

func validMaterialInput() MaterialInput {
	return MaterialInput{
		Name:              "Steel Rod",
		Code:              "SR-12",
		Category:          entities.Metals,
		Supplier:          "Acme Steel",
		OriginCountry:     "Germany",
		UnitPrice:         decimal.RequireFromString("3.10"),
		Unit:              entities.Kilogram,
		MinOrderQty:       100,
		LeadTimeDays:      30,
		Status:            entities.MaterialActive,
		TariffRate:        decimal.NewFromInt(5),
		RequiredDocuments: []string{"Invoice"},
	}
}

func validationDetails(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	return details
}

func TestValidateMaterialInput(t *testing.T) {
	in := validMaterialInput()
	require.NoError(t, Validate(in))

	tests := []struct {
		name    string
		mutate  func(in *MaterialInput)
		field   string
		message string
	}{
		{"missing name", func(in *MaterialInput) { in.Name = "" }, "name", "is required"},
		{"missing supplier", func(in *MaterialInput) { in.Supplier = "" }, "supplier", "is required"},
		{"bad category", func(in *MaterialInput) { in.Category = "Food" }, "category", "must be one of: Metals Chemicals Textiles Electronics Construction Other"},
		{"bad unit", func(in *MaterialInput) { in.Unit = "gallon" }, "unit", "must be one of: kg ton meter piece liter cubic-meter"},
		{"negative price", func(in *MaterialInput) { in.UnitPrice = decimal.NewFromInt(-1) }, "unitPrice", "must be at least 0"},
		{"zero minimum", func(in *MaterialInput) { in.MinOrderQty = 0 }, "minOrderQty", "must be at least 1"},
		{"zero lead time", func(in *MaterialInput) { in.LeadTimeDays = 0 }, "leadTimeDays", "must be at least 1"},
		{"tariff over 100", func(in *MaterialInput) { in.TariffRate = decimal.RequireFromString("100.5") }, "tariffRate", "must be at most 100"},
		{"bad status", func(in *MaterialInput) { in.Status = "Retired" }, "status", "must be one of: Active Discontinued InProcess"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validMaterialInput()
			tt.mutate(&in)
			details := validationDetails(t, Validate(in))
			assert.Equal(t, tt.message, details[tt.field])
		})
	}
}

func TestValidateMaterialInput_ZeroPriceAllowed(t *testing.T) {
	in := validMaterialInput()
	in.UnitPrice = decimal.Zero
	in.TariffRate = decimal.Zero
	assert.NoError(t, Validate(in))
}

func TestMaterialInputNormalize(t *testing.T) {
	in := validMaterialInput()
	in.Name = "  Steel Rod  "
	in.RequiredDocuments = []string{" Invoice ", "", "   ", "Packing list"}
	in.Normalize()

	assert.Equal(t, "Steel Rod", in.Name)
	assert.Equal(t, []string{"Invoice", "Packing list"}, in.RequiredDocuments)
}

func TestOrderInputDefaults(t *testing.T) {
	today := entities.NewDate(2024, 6, 1)

	in := OrderInput{SupplierContact: "  ops@example.com "}
	in.ApplyDefaults(today)
	assert.Zero(t, in.Quantity, "quantity is never defaulted")
	assert.True(t, in.OrderDate.Equal(today))
	assert.Equal(t, entities.Quoting, in.Status)
	assert.True(t, in.LogisticsCost.IsZero())
	assert.Equal(t, "ops@example.com", in.SupplierContact)

	explicit := OrderInput{Quantity: 300, OrderDate: entities.NewDate(2024, 1, 2), Status: entities.Ordered}
	explicit.ApplyDefaults(today)
	assert.Equal(t, 300, explicit.Quantity)
	assert.Equal(t, "2024-01-02", explicit.OrderDate.String())
	assert.Equal(t, entities.Ordered, explicit.Status)
}

func TestValidateOrderInput(t *testing.T) {
	in := OrderInput{Quantity: -1, LogisticsCost: decimal.NewFromInt(-10), Status: "Lost"}
	details := validationDetails(t, Validate(in))

	assert.Equal(t, "must be at least 0", details["quantity"])
	assert.Equal(t, "must be at least 0", details["logisticsCost"])
	assert.Contains(t, details["status"], "must be one of")
}
