package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/importdesk/pkg/domain/entities"
)

func newTestOrder(id entities.OrderID, number string) *entities.ImportOrder {
	material := newTestMaterial("m1", "Steel Rod")
	return &entities.ImportOrder{
		ID:                id,
		OrderNumber:       number,
		MaterialID:        material.ID,
		Material:          material.Clone(),
		Quantity:          10,
		TotalPrice:        decimal.NewFromInt(108),
		OrderDate:         entities.NewDate(2024, 2, 1),
		EstimatedDelivery: entities.NewDate(2024, 2, 21),
		Status:            entities.Quoting,
		UploadedDocuments: []string{},
		LogisticsCost:     decimal.Zero,
		TariffCost:        decimal.NewFromInt(8),
	}
}

func TestOrderRepository_SaveAndGet(t *testing.T) {
	repo := NewOrderRepository(2)
	require.NoError(t, repo.SaveOrder(newTestOrder("o1", "IMP-2024-001")))

	got, err := repo.GetOrder("o1")
	require.NoError(t, err)
	assert.Equal(t, "IMP-2024-001", got.OrderNumber)

	_, err = repo.GetOrder("nope")
	assert.ErrorContains(t, err, "order not found: nope")
}

func TestOrderRepository_RejectsDuplicateNumber(t *testing.T) {
	repo := NewOrderRepository(2)
	require.NoError(t, repo.SaveOrder(newTestOrder("o1", "IMP-2024-001")))

	err := repo.SaveOrder(newTestOrder("o2", "IMP-2024-001"))
	assert.ErrorContains(t, err, "duplicate order number IMP-2024-001")

	err = repo.SaveOrder(newTestOrder("o1", "IMP-2024-002"))
	assert.ErrorContains(t, err, "duplicate order id o1")
	assert.Equal(t, 1, repo.Count())
}

func TestOrderRepository_RejectsQuantityBelowMinimum(t *testing.T) {
	repo := NewOrderRepository(1)
	order := newTestOrder("o1", "IMP-2024-001")
	order.Quantity = 4

	assert.ErrorContains(t, repo.SaveOrder(order), "below the minimum order quantity 5")
	assert.Equal(t, 0, repo.Count())
}

func TestOrderRepository_UpdateOrder(t *testing.T) {
	repo := NewOrderRepository(1)
	require.NoError(t, repo.SaveOrder(newTestOrder("o1", "IMP-2024-001")))

	order, err := repo.GetOrder("o1")
	require.NoError(t, err)
	order.Status = entities.Delivered
	order.UploadedDocuments = append(order.UploadedDocuments, "bill-of-lading.pdf")
	require.NoError(t, repo.UpdateOrder(order))

	stored, err := repo.GetOrder("o1")
	require.NoError(t, err)
	assert.Equal(t, entities.Delivered, stored.Status)
	assert.Equal(t, []string{"bill-of-lading.pdf"}, stored.UploadedDocuments)

	order.OrderNumber = "IMP-2024-999"
	assert.ErrorContains(t, repo.UpdateOrder(order), "cannot change")

	missing := newTestOrder("o9", "IMP-2024-009")
	assert.ErrorContains(t, repo.UpdateOrder(missing), "order not found: o9")
}

func TestOrderRepository_SnapshotIsolatedFromCaller(t *testing.T) {
	repo := NewOrderRepository(1)
	order := newTestOrder("o1", "IMP-2024-001")
	require.NoError(t, repo.SaveOrder(order))

	order.Material.UnitPrice = decimal.NewFromInt(999)
	order.Material.RequiredDocuments[0] = "tampered"

	stored, err := repo.GetOrder("o1")
	require.NoError(t, err)
	assert.True(t, stored.Material.UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, []string{"Invoice"}, stored.Material.RequiredDocuments)
}

func TestOrderRepository_LoadAndRemove(t *testing.T) {
	repo := NewOrderRepository(3)
	require.NoError(t, repo.LoadOrders([]*entities.ImportOrder{
		newTestOrder("o1", "IMP-2024-001"),
		newTestOrder("o2", "IMP-2024-002"),
		newTestOrder("o3", "IMP-2024-003"),
	}))

	require.NoError(t, repo.RemoveOrder("o1"))
	all, err := repo.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "IMP-2024-002", all[0].OrderNumber)

	got, err := repo.GetOrder("o3")
	require.NoError(t, err)
	assert.Equal(t, "IMP-2024-003", got.OrderNumber)

	// The removed number is free again at the repository level; the
	// application sequence is what guarantees it is never reissued.
	require.NoError(t, repo.SaveOrder(newTestOrder("o4", "IMP-2024-001")))
}

func TestOrderRepository_LoadRejectsDuplicates(t *testing.T) {
	repo := NewOrderRepository(2)
	err := repo.LoadOrders([]*entities.ImportOrder{
		newTestOrder("o1", "IMP-2024-001"),
		newTestOrder("o2", "IMP-2024-001"),
	})
	assert.ErrorContains(t, err, "order 2: duplicate order number IMP-2024-001")
	assert.Equal(t, 0, repo.Count())
}
