package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/event"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/store/memory"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeRecorder struct {
	mu  sync.Mutex
	ids []string
}

func (r *changeRecorder) ProductsChanged(_ context.Context, ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, ids...)
}

func setup(t *testing.T, stock int) (inventory.UseCase, *memory.Store, *event.Recorder, *changeRecorder, model.Product) {
	t.Helper()
	store := memory.NewStore()
	p := model.Product{
		BaseModel:     model.BaseModel{ID: uuid.NewString(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:          "Tile",
		Category:      "flooring",
		SKU:           "TILE-1",
		Unit:          model.UnitBox,
		SellingPrice:  decimal.NewFromInt(40),
		Stock:         stock,
		MinStockLevel: 5,
		MaxStockLevel: 100,
		IsActive:      true,
	}
	require.NoError(t, store.Products().Create(context.Background(), &p))

	events := &event.Recorder{}
	changes := &changeRecorder{}
	uc := NewInventoryUseCase(store.Ledger(), store.Products(), store, changes, events, logger.NewNop())
	return uc, store, events, changes, p
}

func qty(n int) *int { return &n }

func TestAdjustPurchaseExample(t *testing.T) {
	uc, store, events, changes, p := setup(t, 7)

	res, err := uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{
		ProductID:   p.ID,
		Quantity:    qty(5),
		Type:        model.MovementPurchase,
		Notes:       "Restock",
		PerformedBy: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Log.QuantityChange)
	assert.Equal(t, 7, res.Log.PreviousStock)
	assert.Equal(t, 12, res.Log.NewStock)
	assert.Equal(t, "Restock", *res.Log.Notes)
	assert.Equal(t, "Tile", *res.Log.ProductName)
	assert.Equal(t, model.ProductSummary{ID: p.ID, Name: "Tile", SKU: "TILE-1", PreviousStock: 7, CurrentStock: 12}, res.Product)

	stored, err := store.Products().FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.Stock)
	assert.Len(t, store.Ledger().All(), 1)

	assert.Equal(t, []string{event.TypeInventoryAdjusted}, events.Types())
	assert.Equal(t, []string{p.ID}, changes.ids)
}

func TestAdjustDamageBeyondStockLeavesStockUnchanged(t *testing.T) {
	uc, store, events, _, p := setup(t, 4)

	_, err := uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{
		ProductID: p.ID,
		Quantity:  qty(5),
		Type:      model.MovementDamage,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))

	stored, err := store.Products().FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Stock)
	assert.Empty(t, store.Ledger().All())
	assert.Empty(t, events.Events())
}

func TestAdjustValidation(t *testing.T) {
	uc, _, _, _, p := setup(t, 4)

	_, err := uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{ProductID: p.ID, Type: model.MovementDamage})
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))
	assert.Equal(t, "Product ID, quantity, and type are required", err.Error())

	_, err = uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{ProductID: p.ID, Quantity: qty(1), Type: "theft"})
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))

	_, err = uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{ProductID: "missing", Quantity: qty(1), Type: model.MovementPurchase})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "Product not found", err.Error())
}

func TestAdjustReferenceModel(t *testing.T) {
	uc, _, _, _, p := setup(t, 4)

	res, err := uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{
		ProductID: p.ID, Quantity: qty(3), Type: model.MovementPurchase, Reference: "PO-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReferenceModelPurchase, *res.Log.ReferenceModel)

	res, err = uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{
		ProductID: p.ID, Quantity: qty(-1), Type: model.MovementAdjustment, Reference: "COUNT-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReferenceModelAdjustment, *res.Log.ReferenceModel)
	assert.Equal(t, 6, res.Product.CurrentStock)
}

func TestListMovements(t *testing.T) {
	uc, _, _, _, p := setup(t, 10)

	for i := 0; i < 3; i++ {
		_, err := uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{ProductID: p.ID, Quantity: qty(1), Type: model.MovementPurchase})
		require.NoError(t, err)
	}

	mv, err := uc.ListMovements(context.Background(), &dto.LogFilters{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 13, mv.Product.CurrentStock)
	require.Len(t, mv.Movements, 3)
	assert.Equal(t, 13, mv.Movements[0].NewStock)

	_, err = uc.ListMovements(context.Background(), &dto.LogFilters{ProductID: "missing"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	logs, total, err := uc.ListLogs(context.Background(), &dto.LogFilters{Type: string(model.MovementPurchase), Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, logs, 2)
}

func TestAdjustUsesInjectedClock(t *testing.T) {
	uc, store, _, _, p := setup(t, 3)
	at := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	uc.(*inventoryUseCase).now = func() time.Time { return at }

	res, err := uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{ProductID: p.ID, Quantity: qty(2), Type: model.MovementPurchase})
	require.NoError(t, err)
	assert.Equal(t, at, res.Log.CreatedAt)

	logs := store.Ledger().All()
	require.Len(t, logs, 1)
	assert.Equal(t, at, logs[0].CreatedAt)
}

func TestAdjustMalformedProductIDIsNotFound(t *testing.T) {
	uc, store, _, _, p := setup(t, 3)

	_, err := uc.AdjustInventory(context.Background(), &dto.AdjustInventoryInput{ProductID: "123", Quantity: qty(1), Type: model.MovementPurchase})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "Product not found", err.Error())

	stored, err := store.Products().FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)
	assert.Empty(t, store.Ledger().All())
}
