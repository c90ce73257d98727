package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
	"github.com/fekuna/omnipos-pos-service/internal/store/memory"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase() (product.UseCase, *memory.Store) {
	store := memory.NewStore()
	return NewProductUseCase(store.Products(), store.Ledger(), store, nil, nil, logger.NewNop()), store
}

func createInput(sku string, stock int) *dto.CreateProductInput {
	return &dto.CreateProductInput{
		Name:          "  Ceramic Tile ",
		Category:      " Flooring",
		SKU:           " " + sku + " ",
		PurchasePrice: decimal.RequireFromString("20.00"),
		SellingPrice:  decimal.RequireFromString("32.50"),
		Stock:         stock,
		PerformedBy:   "u1",
	}
}

func TestCreateProductWritesInitialLedgerEntry(t *testing.T) {
	uc, store := newUseCase()

	p, err := uc.CreateProduct(context.Background(), createInput("CT-01", 40))
	require.NoError(t, err)

	assert.Equal(t, "Ceramic Tile", p.Name)
	assert.Equal(t, "flooring", p.Category)
	assert.Equal(t, "CT-01", p.SKU)
	assert.Equal(t, model.UnitPiece, p.Unit)
	assert.Equal(t, model.DefaultMinStockLevel, p.MinStockLevel)
	assert.True(t, p.IsActive)

	logs := store.Ledger().All()
	require.Len(t, logs, 1)
	assert.Equal(t, model.MovementInitial, logs[0].Type)
	assert.Equal(t, 0, logs[0].PreviousStock)
	assert.Equal(t, 40, logs[0].QuantityChange)
	assert.Equal(t, 40, logs[0].NewStock)
	assert.Equal(t, "Initial stock entry", *logs[0].Notes)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	uc, store := newUseCase()

	_, err := uc.CreateProduct(context.Background(), createInput("CT-01", 1))
	require.NoError(t, err)

	_, err = uc.CreateProduct(context.Background(), createInput("CT-01", 1))
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "SKU already exists", err.Error())
	assert.Len(t, store.Ledger().All(), 1)
}

func TestUpdateProductIgnoresStock(t *testing.T) {
	uc, _ := newUseCase()
	p, err := uc.CreateProduct(context.Background(), createInput("CT-01", 12))
	require.NoError(t, err)
	other, err := uc.CreateProduct(context.Background(), createInput("CT-02", 1))
	require.NoError(t, err)

	price := decimal.RequireFromString("35")
	updated, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{ID: p.ID, SellingPrice: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(updated.SellingPrice))

	got, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)

	taken := "CT-01"
	_, err = uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{ID: other.ID, SKU: &taken})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{ID: "missing", SKU: &taken})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteProductDeactivates(t *testing.T) {
	uc, _ := newUseCase()
	p, err := uc.CreateProduct(context.Background(), createInput("CT-01", 3))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))

	got, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(uc.DeleteProduct(context.Background(), "missing")))
}

func TestListProductsAndLowStock(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.CreateProduct(context.Background(), createInput("LOW", 3))
	require.NoError(t, err)
	_, err = uc.CreateProduct(context.Background(), createInput("EMPTY", 0))
	require.NoError(t, err)
	_, err = uc.CreateProduct(context.Background(), createInput("PLENTY", 500))
	require.NoError(t, err)

	products, total, err := uc.ListProducts(context.Background(), &dto.ProductFilters{StockStatus: string(model.StockStatusOutOfStock), Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "EMPTY", products[0].SKU)

	products, total, err = uc.ListProducts(context.Background(), &dto.ProductFilters{Search: "plen", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "PLENTY", products[0].SKU)

	low, err := uc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "EMPTY", low[0].SKU)
	assert.Equal(t, "LOW", low[1].SKU)
}

type fakeListCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes int
}

func (c *fakeListCache) GetObject(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *fakeListCache) SetObject(_ context.Context, key string, obj interface{}, _ time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
	return nil
}

func (c *fakeListCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.deletes++
	return nil
}

func TestProductsChangedInvalidatesListCacheBeforeReturning(t *testing.T) {
	uc, store := newUseCase()
	cache := &fakeListCache{entries: map[string][]byte{}}
	uc.(*productUseCase).cache = cache

	p, err := uc.CreateProduct(context.Background(), createInput("CT-01", 12))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.deletes)

	filters := &dto.ProductFilters{Page: 1, Limit: 10}
	products, _, err := uc.ListProducts(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Len(t, cache.entries, 1)

	require.NoError(t, store.Products().UpdateStock(context.Background(), p.ID, 9))
	uc.(*productUseCase).ProductsChanged(context.Background(), p.ID)

	assert.Equal(t, 2, cache.deletes)
	assert.Empty(t, cache.entries)

	products, _, err = uc.ListProducts(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 9, products[0].Stock)
}
