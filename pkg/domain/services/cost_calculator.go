package services

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/importdesk/pkg/domain/entities"
)

var hundred = decimal.NewFromInt(100)

// Quote is the cost and schedule breakdown for ordering a material
type Quote struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	TariffCost        decimal.Decimal `json:"tariffCost"`
	LogisticsCost     decimal.Decimal `json:"logisticsCost"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	EstimatedDelivery entities.Date   `json:"estimatedDelivery"`
}

// Subtotal is the pre-tariff goods cost: unit price times quantity
func Subtotal(material *entities.Material, quantity int) decimal.Decimal {
	return material.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// TariffCost applies the material's tariff percentage to the goods subtotal
func TariffCost(material *entities.Material, quantity int) decimal.Decimal {
	return Subtotal(material, quantity).Mul(material.TariffRate).Div(hundred)
}

// TotalPrice is the landed cost: goods, logistics and tariff
func TotalPrice(material *entities.Material, quantity int, logisticsCost decimal.Decimal) decimal.Decimal {
	return Subtotal(material, quantity).Add(logisticsCost).Add(TariffCost(material, quantity))
}

// EstimatedDeliveryDate adds the supplier lead time in calendar days
func EstimatedDeliveryDate(orderDate entities.Date, leadTimeDays int) entities.Date {
	return orderDate.AddDays(leadTimeDays)
}

// QuoteOrder computes every derived figure of an order in one pass.
// Callers validate quantity and logistics cost beforehand.
func QuoteOrder(
	material *entities.Material,
	quantity int,
	orderDate entities.Date,
	logisticsCost decimal.Decimal,
) Quote {
	subtotal := Subtotal(material, quantity)
	tariff := TariffCost(material, quantity)
	return Quote{
		Subtotal:          subtotal,
		TariffCost:        tariff,
		LogisticsCost:     logisticsCost,
		TotalPrice:        subtotal.Add(logisticsCost).Add(tariff),
		EstimatedDelivery: EstimatedDeliveryDate(orderDate, material.LeadTimeDays),
	}
}
