package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaterialID is the opaque identifier of a catalog entry
type MaterialID string

// Category groups materials for filtering
type Category string

const (
	Metals       Category = "Metals"
	Chemicals    Category = "Chemicals"
	Textiles     Category = "Textiles"
	Electronics  Category = "Electronics"
	Construction Category = "Construction"
	OtherGoods   Category = "Other"
)

// Categories lists every category in display order
var Categories = []Category{Metals, Chemicals, Textiles, Electronics, Construction, OtherGoods}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory matches a category name case-insensitively
func ParseCategory(s string) (Category, error) {
	for _, known := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Unit is the unit of measure a material is priced in
type Unit string

const (
	Kilogram   Unit = "kg"
	Ton        Unit = "ton"
	Meter      Unit = "meter"
	Piece      Unit = "piece"
	Liter      Unit = "liter"
	CubicMeter Unit = "cubic-meter"
)

// Units lists every unit of measure
var Units = []Unit{Kilogram, Ton, Meter, Piece, Liter, CubicMeter}

var unitAliases = map[string]Unit{
	"mt":  Meter,
	"m":   Meter,
	"pcs": Piece,
	"pc":  Piece,
	"lt":  Liter,
	"l":   Liter,
	"m3":  CubicMeter,
}

func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

func (u Unit) String() string { return string(u) }

// ParseUnit accepts canonical unit names and the short supplier abbreviations
func ParseUnit(s string) (Unit, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, known := range Units {
		if normalized == string(known) {
			return known, nil
		}
	}
	if unit, ok := unitAliases[normalized]; ok {
		return unit, nil
	}
	return "", fmt.Errorf("unknown unit of measure %q", s)
}

// MaterialStatus is the catalog availability of a material
type MaterialStatus string

const (
	MaterialActive       MaterialStatus = "Active"
	MaterialDiscontinued MaterialStatus = "Discontinued"
	MaterialInProcess    MaterialStatus = "InProcess"
)

// MaterialStatuses lists every material status in display order
var MaterialStatuses = []MaterialStatus{MaterialActive, MaterialDiscontinued, MaterialInProcess}

func (s MaterialStatus) Valid() bool {
	for _, known := range MaterialStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s MaterialStatus) String() string { return string(s) }

// ParseMaterialStatus matches a status name case-insensitively
func ParseMaterialStatus(s string) (MaterialStatus, error) {
	for _, known := range MaterialStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown material status %q", s)
}

// Material represents a purchasable commodity in the import catalog
type Material struct {
	ID                MaterialID      `json:"id"`
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	Category          Category        `json:"category"`
	Description       string          `json:"description"`
	Supplier          string          `json:"supplier"`
	OriginCountry     string          `json:"originCountry"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Unit              Unit            `json:"unit"`
	MinOrderQty       int             `json:"minOrderQty"`
	LeadTimeDays      int             `json:"leadTimeDays"`
	RegisteredOn      Date            `json:"registeredOn"`
	Status            MaterialStatus  `json:"status"`
	TariffRate        decimal.Decimal `json:"tariffRate"`
	RequiredDocuments []string        `json:"requiredDocuments"`
}

var hundred = decimal.NewFromInt(100)

// Validate checks the catalog invariants of a material
func (m *Material) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("material id cannot be empty")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("material name cannot be empty")
	}
	if !m.Category.Valid() {
		return fmt.Errorf("invalid category %q", m.Category)
	}
	if !m.Unit.Valid() {
		return fmt.Errorf("invalid unit of measure %q", m.Unit)
	}
	if !m.Status.Valid() {
		return fmt.Errorf("invalid material status %q", m.Status)
	}
	if m.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price cannot be negative, got %s", m.UnitPrice)
	}
	if m.MinOrderQty < 1 {
		return fmt.Errorf("minimum order quantity must be at least 1, got %d", m.MinOrderQty)
	}
	if m.LeadTimeDays < 1 {
		return fmt.Errorf("lead time must be at least 1 day, got %d", m.LeadTimeDays)
	}
	if m.TariffRate.IsNegative() || m.TariffRate.GreaterThan(hundred) {
		return fmt.Errorf("tariff rate must be between 0 and 100, got %s", m.TariffRate)
	}
	if m.RegisteredOn.IsZero() {
		return fmt.Errorf("registration date cannot be empty")
	}
	return nil
}

// Clone returns a deep copy that shares no mutable state with m
func (m *Material) Clone() Material {
	clone := *m
	if m.RequiredDocuments != nil {
		clone.RequiredDocuments = append([]string(nil), m.RequiredDocuments...)
	}
	return clone
}
