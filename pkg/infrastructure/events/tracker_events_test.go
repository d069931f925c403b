package events

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/importdesk/pkg/logger"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		data      any
		want      string
	}{
		{
			"material registered", MaterialRegisteredEvent,
			MaterialRegistered{Name: "Steel Rod", UnitPrice: decimal.RequireFromString("12.5")},
			"registered Steel Rod at $12.50",
		},
		{
			"material price and status change", MaterialUpdatedEvent,
			MaterialUpdated{OldUnitPrice: decimal.NewFromInt(3), NewUnitPrice: decimal.NewFromInt(4), OldStatus: "Active", NewStatus: "Discontinued"},
			"updated, price $3.00 -> $4.00, status Active -> Discontinued",
		},
		{
			"material unchanged fields omitted", MaterialUpdatedEvent,
			MaterialUpdated{OldUnitPrice: decimal.NewFromInt(3), NewUnitPrice: decimal.NewFromInt(3), OldStatus: "Active", NewStatus: "Active"},
			"updated",
		},
		{
			"order created", OrderCreatedEvent,
			OrderCreated{OrderNumber: "IMP-2024-001", Quantity: 150, TotalPrice: decimal.RequireFromString("2068.75"), Status: "Quoting"},
			"IMP-2024-001 created: 150 units, total $2068.75, Quoting",
		},
		{
			"status changed", OrderStatusChangedEvent,
			OrderStatusChanged{OrderNumber: "IMP-2024-001", From: "Quoting", To: "Ordered"},
			"IMP-2024-001 status Quoting -> Ordered",
		},
		{
			"document attached", OrderDocumentAttachedEvent,
			OrderDocumentAttached{OrderNumber: "IMP-2024-001", Document: "invoice.pdf"},
			"IMP-2024-001 document attached: invoice.pdf",
		},
		{
			"unknown type", "order.archived",
			map[string]string{"reason": "old"},
			`{"reason":"old"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Describe(mustEvent(t, tt.eventType, "order-1", tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe_BadPayload(t *testing.T) {
	event := BaseEvent{EventType: OrderCreatedEvent, Stream: "order-1", EventData: json.RawMessage(`"nope"`)}

	_, err := Describe(event)
	assert.ErrorContains(t, err, "decoding order.created event")
}

func TestLogHandler_LogsSubscribedEvents(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{ServiceName: "importdesk", Output: &buf})
	s := NewInMemoryEventStore(log)
	require.NoError(t, s.Subscribe([]string{OrderStatusChangedEvent}, NewLogHandler(log)))

	require.NoError(t, s.AppendEvent("order-1", mustEvent(t, OrderStatusChangedEvent, "order-1",
		OrderStatusChanged{OrderNumber: "IMP-2024-001", From: "Quoting", To: "Ordered"})))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tracker event", entry["message"])
	assert.Equal(t, OrderStatusChangedEvent, entry["event_type"])
	assert.Equal(t, "IMP-2024-001 status Quoting -> Ordered", entry["summary"])
}
