package events

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	MaterialRegisteredEvent = "material.registered"
	MaterialUpdatedEvent    = "material.updated"

	OrderCreatedEvent          = "order.created"
	OrderStatusChangedEvent    = "order.status_changed"
	OrderDocumentAttachedEvent = "order.document_attached"
)

// MaterialStream is the stream holding one material's history
func MaterialStream(materialID string) string {
	return "material-" + materialID
}

// OrderStream is the stream holding one order's history
func OrderStream(orderID string) string {
	return "order-" + orderID
}

type MaterialRegistered struct {
	MaterialID string          `json:"materialId"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

type MaterialUpdated struct {
	MaterialID   string          `json:"materialId"`
	OldUnitPrice decimal.Decimal `json:"oldUnitPrice"`
	NewUnitPrice decimal.Decimal `json:"newUnitPrice"`
	OldStatus    string          `json:"oldStatus"`
	NewStatus    string          `json:"newStatus"`
}

type OrderCreated struct {
	OrderNumber string          `json:"orderNumber"`
	MaterialID  string          `json:"materialId"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Status      string          `json:"status"`
}

type OrderStatusChanged struct {
	OrderNumber string `json:"orderNumber"`
	From        string `json:"from"`
	To          string `json:"to"`
}

type OrderDocumentAttached struct {
	OrderNumber string `json:"orderNumber"`
	Document    string `json:"document"`
}

// Describe renders an event payload as a one-line summary. Unknown event
// types fall back to the raw payload.
func Describe(event Event) (string, error) {
	switch event.Type() {
	case MaterialRegisteredEvent:
		var e MaterialRegistered
		if err := Decode(event, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("registered %s at $%s", e.Name, e.UnitPrice.StringFixed(2)), nil
	case MaterialUpdatedEvent:
		var e MaterialUpdated
		if err := Decode(event, &e); err != nil {
			return "", err
		}
		summary := "updated"
		if !e.OldUnitPrice.Equal(e.NewUnitPrice) {
			summary += fmt.Sprintf(", price $%s -> $%s", e.OldUnitPrice.StringFixed(2), e.NewUnitPrice.StringFixed(2))
		}
		if e.OldStatus != e.NewStatus {
			summary += fmt.Sprintf(", status %s -> %s", e.OldStatus, e.NewStatus)
		}
		return summary, nil
	case OrderCreatedEvent:
		var e OrderCreated
		if err := Decode(event, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s created: %d units, total $%s, %s",
			e.OrderNumber, e.Quantity, e.TotalPrice.StringFixed(2), e.Status), nil
	case OrderStatusChangedEvent:
		var e OrderStatusChanged
		if err := Decode(event, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s status %s -> %s", e.OrderNumber, e.From, e.To), nil
	case OrderDocumentAttachedEvent:
		var e OrderDocumentAttached
		if err := Decode(event, &e); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s document attached: %s", e.OrderNumber, e.Document), nil
	default:
		return string(event.Data()), nil
	}
}
