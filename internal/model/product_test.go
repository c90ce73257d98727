package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStockStatus(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		want  StockStatus
	}{
		{"empty", 0, StockStatusOutOfStock},
		{"one", 1, StockStatusLow},
		{"at min", 10, StockStatusLow},
		{"healthy", 11, StockStatusInStock},
		{"at max", 1000, StockStatusOverstock},
		{"above max", 1500, StockStatusOverstock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Stock: tt.stock, MinStockLevel: 10, MaxStockLevel: 1000}
			assert.Equal(t, tt.want, p.StockStatus())
		})
	}
}

func TestProductJSONIncludesStockStatus(t *testing.T) {
	p := Product{
		BaseModel:     BaseModel{ID: "p1"},
		Name:          "Basin",
		SellingPrice:  decimal.NewFromInt(100),
		Stock:         7,
		MinStockLevel: 10,
		MaxStockLevel: 1000,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "low_stock", out["stockStatus"])
	assert.Equal(t, "p1", out["id"])
	assert.Equal(t, float64(100), out["sellingPrice"])
}
