package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vsinha/importdesk/pkg/application/dto"
	"github.com/vsinha/importdesk/pkg/domain/entities"
)

// filterEnabled reports whether a category/status filter value restricts results
func filterEnabled(value string) bool {
	return value != "" && value != dto.FilterAll
}

func containsFold(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}

// MatchMaterial applies a MaterialFilter to one material
func MatchMaterial(material *entities.Material, filter dto.MaterialFilter) bool {
	term := strings.ToLower(filter.Search)
	matchesSearch := containsFold(material.Name, term) ||
		containsFold(material.Code, term) ||
		containsFold(material.Supplier, term)
	matchesCategory := !filterEnabled(filter.Category) || string(material.Category) == filter.Category
	matchesStatus := !filterEnabled(filter.Status) || string(material.Status) == filter.Status
	return matchesSearch && matchesCategory && matchesStatus
}

// MatchOrder applies an OrderFilter to one order
func MatchOrder(order *entities.ImportOrder, filter dto.OrderFilter) bool {
	term := strings.ToLower(filter.Search)
	matchesSearch := containsFold(order.OrderNumber, term) || containsFold(order.Material.Name, term)
	matchesStatus := !filterEnabled(filter.Status) || string(order.Status) == filter.Status
	return matchesSearch && matchesStatus
}

// FilterMaterials keeps matching materials in their original order
func FilterMaterials(materials []*entities.Material, filter dto.MaterialFilter) []*entities.Material {
	filtered := make([]*entities.Material, 0, len(materials))
	for _, material := range materials {
		if MatchMaterial(material, filter) {
			filtered = append(filtered, material)
		}
	}
	return filtered
}

// FilterOrders keeps matching orders in their original order
func FilterOrders(orders []*entities.ImportOrder, filter dto.OrderFilter) []*entities.ImportOrder {
	filtered := make([]*entities.ImportOrder, 0, len(orders))
	for _, order := range orders {
		if MatchOrder(order, filter) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// ComputeDashboardStats reduces the catalog and order log to dashboard figures
func ComputeDashboardStats(materials []*entities.Material, orders []*entities.ImportOrder) dto.DashboardStats {
	stats := dto.DashboardStats{
		MaterialsCount: len(materials),
		OrdersCount:    len(orders),
		TotalCost:      decimal.Zero,
	}
	for _, order := range orders {
		stats.TotalCost = stats.TotalCost.Add(order.TotalPrice)
		if order.Status.IsActive() {
			stats.ActiveOrders++
		}
		if order.Status.IsPending() {
			stats.PendingOrders++
		}
		if order.Status == entities.Delivered {
			stats.CompletedOrders++
		}
	}
	return stats
}
