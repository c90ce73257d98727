package dto

import (
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	SKU           string          `json:"sku" binding:"required"`
	Description   string          `json:"description"`
	Unit          model.Unit      `json:"unit" binding:"omitempty,oneof=piece box bag sq_ft sq_meter kg"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" binding:"gte=0"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" binding:"gte=0"`
	Stock         int             `json:"stock" binding:"gte=0"`
	MinStockLevel *int            `json:"minStockLevel" binding:"omitempty,gte=0"`
	MaxStockLevel *int            `json:"maxStockLevel" binding:"omitempty,gte=0"`
	Supplier      model.Supplier  `json:"supplier"`
	ImageURL      *string         `json:"imageUrl"`

	PerformedBy string `json:"-"`
}

// UpdateProductInput carries only the fields present in the request body.
// Stock is not updatable here; it moves through the inventory ledger.
type UpdateProductInput struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name" binding:"omitempty,min=1"`
	Category      *string          `json:"category" binding:"omitempty,min=1"`
	SKU           *string          `json:"sku" binding:"omitempty,min=1"`
	Description   *string          `json:"description"`
	Unit          *model.Unit      `json:"unit" binding:"omitempty,oneof=piece box bag sq_ft sq_meter kg"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice" binding:"omitempty,gte=0"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice" binding:"omitempty,gte=0"`
	MinStockLevel *int             `json:"minStockLevel" binding:"omitempty,gte=0"`
	MaxStockLevel *int             `json:"maxStockLevel" binding:"omitempty,gte=0"`
	Supplier      *model.Supplier  `json:"supplier"`
	ImageURL      *string          `json:"imageUrl"`
	IsActive      *bool            `json:"isActive"`
}
