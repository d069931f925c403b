package repositories

import "github.com/vsinha/importdesk/pkg/domain/entities"

// OrderRepository provides access to import orders
type OrderRepository interface {
	GetOrder(id entities.OrderID) (*entities.ImportOrder, error)
	GetAllOrders() ([]*entities.ImportOrder, error)
	SaveOrder(order *entities.ImportOrder) error
	UpdateOrder(order *entities.ImportOrder) error
	LoadOrders(orders []*entities.ImportOrder) error
	// RemoveOrder undoes a save; used when persisting orders fails
	RemoveOrder(id entities.OrderID) error
}
