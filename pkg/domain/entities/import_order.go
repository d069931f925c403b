package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderID is the opaque identifier of an import order
type OrderID string

// OrderStatus tracks an import order through procurement and delivery
type OrderStatus string

const (
	Quoting   OrderStatus = "Quoting"
	Ordered   OrderStatus = "Ordered"
	InTransit OrderStatus = "InTransit"
	InCustoms OrderStatus = "InCustoms"
	Delivered OrderStatus = "Delivered"
	Cancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every order status in lifecycle order
var OrderStatuses = []OrderStatus{Quoting, Ordered, InTransit, InCustoms, Delivered, Cancelled}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// IsActive reports whether the order has not reached a terminal status
func (s OrderStatus) IsActive() bool {
	return s != Delivered && s != Cancelled
}

// IsPending reports whether the order is still being quoted, placed or shipped
func (s OrderStatus) IsPending() bool {
	switch s {
	case Quoting, Ordered, InTransit, InCustoms:
		return true
	default:
		return false
	}
}

// ParseOrderStatus matches a status name case-insensitively
func ParseOrderStatus(s string) (OrderStatus, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	for _, known := range OrderStatuses {
		if strings.EqualFold(normalized, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// ImportOrder is one procurement transaction against a catalog material.
// Material is a snapshot taken when the order was created.
type ImportOrder struct {
	ID                OrderID         `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	MaterialID        MaterialID      `json:"materialId"`
	Material          Material        `json:"material"`
	Quantity          int             `json:"quantity"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	OrderDate         Date            `json:"orderDate"`
	EstimatedDelivery Date            `json:"estimatedDelivery"`
	Status            OrderStatus     `json:"status"`
	SupplierContact   string          `json:"supplierContact"`
	UploadedDocuments []string        `json:"uploadedDocuments"`
	Notes             string          `json:"notes"`
	LogisticsCost     decimal.Decimal `json:"logisticsCost"`
	TariffCost        decimal.Decimal `json:"tariffCost"`
}

// Validate checks the invariants an order must hold once created
func (o *ImportOrder) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("order id cannot be empty")
	}
	if o.OrderNumber == "" {
		return fmt.Errorf("order number cannot be empty")
	}
	if o.Quantity < o.Material.MinOrderQty {
		return fmt.Errorf("quantity %d is below the minimum order quantity %d for %s",
			o.Quantity, o.Material.MinOrderQty, o.Material.Name)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("invalid order status %q", o.Status)
	}
	if o.LogisticsCost.IsNegative() {
		return fmt.Errorf("logistics cost cannot be negative, got %s", o.LogisticsCost)
	}
	if o.OrderDate.IsZero() {
		return fmt.Errorf("order date cannot be empty")
	}
	return nil
}

// Clone returns a deep copy that shares no mutable state with o
func (o *ImportOrder) Clone() ImportOrder {
	clone := *o
	clone.Material = o.Material.Clone()
	if o.UploadedDocuments != nil {
		clone.UploadedDocuments = append([]string(nil), o.UploadedDocuments...)
	}
	return clone
}
