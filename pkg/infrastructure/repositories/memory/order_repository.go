package memory

import (
	"fmt"

	"github.com/vsinha/importdesk/pkg/domain/entities"
	"github.com/vsinha/importdesk/pkg/domain/repositories"
	"go.uber.org/multierr"
)

// OrderRepository keeps import orders in creation order
type OrderRepository struct {
	orders    []entities.ImportOrder
	ordersMap map[entities.OrderID]int
	numbers   map[string]entities.OrderID
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository(expectedOrders int) *OrderRepository {
	return &OrderRepository{
		orders:    make([]entities.ImportOrder, 0, expectedOrders),
		ordersMap: make(map[entities.OrderID]int, expectedOrders),
		numbers:   make(map[string]entities.OrderID, expectedOrders),
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadOrders loads orders into the repository. Nothing is loaded if any
// order is invalid or repeats an id or order number.
func (r *OrderRepository) LoadOrders(orders []*entities.ImportOrder) error {
	var errs error
	seenIDs := make(map[entities.OrderID]bool, len(orders))
	seenNumbers := make(map[string]bool, len(orders))
	for i, order := range orders {
		if err := order.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("order %d: %w", i+1, err))
			continue
		}
		if seenIDs[order.ID] || r.hasID(order.ID) {
			errs = multierr.Append(errs, fmt.Errorf("order %d: duplicate order id %s", i+1, order.ID))
			continue
		}
		if seenNumbers[order.OrderNumber] || r.hasNumber(order.OrderNumber) {
			errs = multierr.Append(errs, fmt.Errorf("order %d: duplicate order number %s", i+1, order.OrderNumber))
			continue
		}
		seenIDs[order.ID] = true
		seenNumbers[order.OrderNumber] = true
	}
	if errs != nil {
		return errs
	}

	for _, order := range orders {
		r.add(order.Clone())
	}
	return nil
}

// SaveOrder stores a new order, keeping its own copy of the material snapshot
func (r *OrderRepository) SaveOrder(order *entities.ImportOrder) error {
	if err := order.Validate(); err != nil {
		return err
	}
	if r.hasID(order.ID) {
		return fmt.Errorf("duplicate order id %s", order.ID)
	}
	if r.hasNumber(order.OrderNumber) {
		return fmt.Errorf("duplicate order number %s", order.OrderNumber)
	}
	r.add(order.Clone())
	return nil
}

// UpdateOrder replaces an existing order in place. The order number is fixed.
func (r *OrderRepository) UpdateOrder(order *entities.ImportOrder) error {
	index, exists := r.ordersMap[order.ID]
	if !exists {
		return fmt.Errorf("order not found: %s", order.ID)
	}
	if r.orders[index].OrderNumber != order.OrderNumber {
		return fmt.Errorf("order number of %s cannot change", order.ID)
	}
	if err := order.Validate(); err != nil {
		return err
	}
	r.orders[index] = order.Clone()
	return nil
}

// GetOrder returns a copy of the order with the given id
func (r *OrderRepository) GetOrder(id entities.OrderID) (*entities.ImportOrder, error) {
	index, exists := r.ordersMap[id]
	if !exists {
		return nil, fmt.Errorf("order not found: %s", id)
	}
	order := r.orders[index].Clone()
	return &order, nil
}

// GetAllOrders returns copies of all orders in creation order
func (r *OrderRepository) GetAllOrders() ([]*entities.ImportOrder, error) {
	orders := make([]*entities.ImportOrder, 0, len(r.orders))
	for i := range r.orders {
		order := r.orders[i].Clone()
		orders = append(orders, &order)
	}
	return orders, nil
}

// RemoveOrder deletes an order and reindexes the ones after it
func (r *OrderRepository) RemoveOrder(id entities.OrderID) error {
	index, exists := r.ordersMap[id]
	if !exists {
		return fmt.Errorf("order not found: %s", id)
	}
	delete(r.numbers, r.orders[index].OrderNumber)
	r.orders = append(r.orders[:index], r.orders[index+1:]...)
	delete(r.ordersMap, id)
	for i := index; i < len(r.orders); i++ {
		r.ordersMap[r.orders[i].ID] = i
	}
	return nil
}

// Count returns the number of stored orders
func (r *OrderRepository) Count() int {
	return len(r.orders)
}

func (r *OrderRepository) hasID(id entities.OrderID) bool {
	_, exists := r.ordersMap[id]
	return exists
}

func (r *OrderRepository) hasNumber(number string) bool {
	_, exists := r.numbers[number]
	return exists
}

func (r *OrderRepository) add(order entities.ImportOrder) {
	r.ordersMap[order.ID] = len(r.orders)
	r.numbers[order.OrderNumber] = order.ID
	r.orders = append(r.orders, order)
}
