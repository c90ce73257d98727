package dto

import (
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type LogFilters struct {
	ProductID string
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

type AdjustmentResult struct {
	Log     *model.InventoryLog  `json:"log"`
	Product model.ProductSummary `json:"product"`
}

type ProductMovements struct {
	Product   ProductRef           `json:"product"`
	Movements []model.InventoryLog `json:"movements"`
}

type ProductRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"currentStock"`
}
