// Package seed holds the sample catalog and orders used on first run and
// whenever stored data cannot be read.
package seed

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/importdesk/pkg/domain/entities"
	"github.com/vsinha/importdesk/pkg/domain/services"
)

// Materials returns a fresh copy of the seed catalog
func Materials() []*entities.Material {
	return []*entities.Material{
		{
			ID:                "seed-mat-001",
			Name:              "Stainless Steel Sheet 304",
			Code:              "SS304-2MM",
			Category:          entities.Metals,
			Description:       "Cold rolled 2mm stainless steel sheet, 2B finish",
			Supplier:          "Baosteel Trading Co.",
			OriginCountry:     "China",
			UnitPrice:         decimal.RequireFromString("2.85"),
			Unit:              entities.Kilogram,
			MinOrderQty:       500,
			LeadTimeDays:      45,
			RegisteredOn:      entities.NewDate(2024, 1, 15),
			Status:            entities.MaterialActive,
			TariffRate:        decimal.RequireFromString("7.5"),
			RequiredDocuments: []string{"Commercial invoice", "Packing list", "Certificate of origin", "Mill test certificate"},
		},
		{
			ID:                "seed-mat-002",
			Name:              "Sodium Hydroxide Pellets",
			Code:              "NAOH-99",
			Category:          entities.Chemicals,
			Description:       "Caustic soda pellets, 99% purity, 25kg bags",
			Supplier:          "Química Andina S.A.",
			OriginCountry:     "Peru",
			UnitPrice:         decimal.RequireFromString("480"),
			Unit:              entities.Ton,
			MinOrderQty:       5,
			LeadTimeDays:      30,
			RegisteredOn:      entities.NewDate(2024, 2, 3),
			Status:            entities.MaterialActive,
			TariffRate:        decimal.RequireFromString("12"),
			RequiredDocuments: []string{"Commercial invoice", "Safety data sheet", "Hazardous goods declaration"},
		},
		{
			ID:                "seed-mat-003",
			Name:              "Organic Cotton Twill",
			Code:              "OCT-240",
			Category:          entities.Textiles,
			Description:       "240gsm organic cotton twill, undyed",
			Supplier:          "Anatolia Weavers",
			OriginCountry:     "Turkey",
			UnitPrice:         decimal.RequireFromString("4.20"),
			Unit:              entities.Meter,
			MinOrderQty:       1000,
			LeadTimeDays:      25,
			RegisteredOn:      entities.NewDate(2024, 2, 20),
			Status:            entities.MaterialInProcess,
			TariffRate:        decimal.RequireFromString("10"),
			RequiredDocuments: []string{"Commercial invoice", "GOTS certificate"},
		},
		{
			ID:                "seed-mat-004",
			Name:              "Microcontroller STM32F103",
			Code:              "STM32F103C8T6",
			Category:          entities.Electronics,
			Description:       "ARM Cortex-M3 MCU, LQFP48",
			Supplier:          "Shenzhen Components Ltd.",
			OriginCountry:     "China",
			UnitPrice:         decimal.RequireFromString("1.95"),
			Unit:              entities.Piece,
			MinOrderQty:       250,
			LeadTimeDays:      21,
			RegisteredOn:      entities.NewDate(2024, 3, 5),
			Status:            entities.MaterialDiscontinued,
			TariffRate:        decimal.Zero,
			RequiredDocuments: []string{"Commercial invoice", "Airway bill"},
		},
	}
}

// Orders returns a fresh copy of the seed orders. Derived amounts and dates
// are computed with the same calculator live orders use.
func Orders() []*entities.ImportOrder {
	catalog := Materials()
	return []*entities.ImportOrder{
		seedOrder("seed-ord-001", "IMP-2024-001", catalog[0], 2000, entities.NewDate(2024, 3, 1),
			entities.InTransit, "sales@baosteel.example", "850", "Container ETA Shanghai port",
			[]string{"commercial-invoice.pdf", "packing-list.pdf"}),
		seedOrder("seed-ord-002", "IMP-2024-002", catalog[1], 10, entities.NewDate(2024, 3, 18),
			entities.InCustoms, "+51 1 555 0199", "1200", "Awaiting hazardous goods inspection",
			[]string{"commercial-invoice.pdf"}),
		seedOrder("seed-ord-003", "IMP-2024-003", catalog[3], 500, entities.NewDate(2024, 1, 10),
			entities.Delivered, "orders@szcomponents.example", "120", "",
			[]string{"commercial-invoice.pdf", "airway-bill.pdf"}),
	}
}

// LastOrderSequence is the highest sequence used by Orders
const LastOrderSequence = 3

func seedOrder(
	id entities.OrderID,
	number string,
	material *entities.Material,
	quantity int,
	orderDate entities.Date,
	status entities.OrderStatus,
	contact string,
	logistics string,
	notes string,
	documents []string,
) *entities.ImportOrder {
	logisticsCost := decimal.RequireFromString(logistics)
	quote := services.QuoteOrder(material, quantity, orderDate, logisticsCost)
	return &entities.ImportOrder{
		ID:                id,
		OrderNumber:       number,
		MaterialID:        material.ID,
		Material:          material.Clone(),
		Quantity:          quantity,
		TotalPrice:        quote.TotalPrice,
		OrderDate:         orderDate,
		EstimatedDelivery: quote.EstimatedDelivery,
		Status:            status,
		SupplierContact:   contact,
		UploadedDocuments: documents,
		Notes:             notes,
		LogisticsCost:     logisticsCost,
		TariffCost:        quote.TariffCost,
	}
}
