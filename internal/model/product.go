package model

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitPiece   Unit = "piece"
	UnitBox     Unit = "box"
	UnitBag     Unit = "bag"
	UnitSqFt    Unit = "sq_ft"
	UnitSqMeter Unit = "sq_meter"
	UnitKg      Unit = "kg"
)

type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusLow        StockStatus = "low_stock"
	StockStatusOverstock  StockStatus = "overstock"
	StockStatusInStock    StockStatus = "in_stock"
)

const (
	DefaultMinStockLevel = 10
	DefaultMaxStockLevel = 1000
)

type Supplier struct {
	Name    string `json:"name,omitempty"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
}

func (s Supplier) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Supplier) Scan(src interface{}) error {
	return scanJSON(src, s)
}

type Product struct {
	BaseModel
	Name          string          `db:"name" json:"name"`
	Category      string          `db:"category" json:"category"`
	SKU           string          `db:"sku" json:"sku"`
	Description   string          `db:"description" json:"description"`
	Unit          Unit            `db:"unit" json:"unit"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchasePrice"`
	SellingPrice  decimal.Decimal `db:"selling_price" json:"sellingPrice"`
	Stock         int             `db:"stock" json:"stock"`
	MinStockLevel int             `db:"min_stock_level" json:"minStockLevel"`
	MaxStockLevel int             `db:"max_stock_level" json:"maxStockLevel"`
	Supplier      Supplier        `db:"supplier" json:"supplier"`
	ImageURL      *string         `db:"image_url" json:"imageUrl,omitempty"`
	IsActive      bool            `db:"is_active" json:"isActive"`
}

// StockStatus is derived from stock and the thresholds; it is never stored.
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.Stock == 0:
		return StockStatusOutOfStock
	case p.Stock <= p.MinStockLevel:
		return StockStatusLow
	case p.Stock >= p.MaxStockLevel:
		return StockStatusOverstock
	default:
		return StockStatusInStock
	}
}

func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		StockStatus StockStatus `json:"stockStatus"`
	}{alias(p), p.StockStatus()})
}

// ProductSummary is what the adjustment endpoint reports back.
type ProductSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	PreviousStock int    `json:"previousStock"`
	CurrentStock  int    `json:"currentStock"`
}
