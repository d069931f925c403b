package dto

import "github.com/shopspring/decimal"

// FilterAll disables a category or status filter
const FilterAll = "all"

// MaterialFilter narrows the catalog. Search is a case-insensitive substring
// of name, code or supplier; Category and Status match exactly.
type MaterialFilter struct {
	Search   string
	Category string
	Status   string
}

// OrderFilter narrows the order log. Search is a case-insensitive substring
// of the order number or the snapshotted material name.
type OrderFilter struct {
	Search string
	Status string
}

// DashboardStats aggregates the catalog and order log
type DashboardStats struct {
	MaterialsCount  int             `json:"materialsCount"`
	OrdersCount     int             `json:"ordersCount"`
	ActiveOrders    int             `json:"activeOrders"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	PendingOrders   int             `json:"pendingOrders"`
	CompletedOrders int             `json:"completedOrders"`
}
