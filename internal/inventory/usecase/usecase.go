package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/event"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	"github.com/fekuna/omnipos-pos-service/pkg/database"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const movementsLimit = 100

var tracer = otel.Tracer("github.com/fekuna/omnipos-pos-service/internal/inventory")

type inventoryUseCase struct {
	repo      inventory.Repository
	products  product.Repository
	tx        database.Transactor
	notifier  product.ChangeNotifier
	publisher event.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewInventoryUseCase(
	repo inventory.Repository,
	products product.Repository,
	tx database.Transactor,
	notifier product.ChangeNotifier,
	publisher event.Publisher,
	log logger.ZapLogger,
) inventory.UseCase {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &inventoryUseCase{
		repo:      repo,
		products:  products,
		tx:        tx,
		notifier:  notifier,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

type adjustedPayload struct {
	ProductID      string             `json:"product_id"`
	Type           model.MovementType `json:"type"`
	QuantityChange int                `json:"quantity_change"`
	PreviousStock  int                `json:"previous_stock"`
	NewStock       int                `json:"new_stock"`
	PerformedBy    string             `json:"performed_by"`
}

func (uc *inventoryUseCase) AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*dto.AdjustmentResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.AdjustInventory")
	defer span.End()

	if input.ProductID == "" || input.Quantity == nil || input.Type == "" {
		return nil, apperror.InvalidArgument("Product ID, quantity, and type are required")
	}
	if !input.Type.Valid() {
		return nil, apperror.InvalidArgument("Invalid adjustment type: %s", input.Type)
	}
	if _, err := uuid.Parse(input.ProductID); err != nil {
		return nil, apperror.NotFound("Product not found")
	}
	span.SetAttributes(
		attribute.String("product.id", input.ProductID),
		attribute.String("adjustment.type", string(input.Type)),
		attribute.Int("adjustment.quantity", *input.Quantity),
	)

	var (
		log      *model.InventoryLog
		summary  model.ProductSummary
		minLevel int
	)
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.products.FindByIDForUpdate(ctx, input.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		if p == nil {
			return apperror.NotFound("Product not found")
		}

		delta, err := resolveDelta(input.Type, *input.Quantity, p.Stock)
		if err != nil {
			return err
		}

		newStock := p.Stock + delta
		if err := uc.products.UpdateStock(ctx, p.ID, newStock); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}

		log = &model.InventoryLog{
			ID:             uuid.New().String(),
			ProductID:      p.ID,
			Type:           input.Type,
			QuantityChange: delta,
			PreviousStock:  p.Stock,
			NewStock:       newStock,
			PerformedBy:    input.PerformedBy,
			CreatedAt:      uc.now(),
		}
		if input.Notes != "" {
			log.Notes = &input.Notes
		}
		if input.Reference != "" {
			refModel := model.ReferenceModelAdjustment
			if input.Type == model.MovementPurchase {
				refModel = model.ReferenceModelPurchase
			}
			log.Reference = &input.Reference
			log.ReferenceModel = &refModel
		}
		if err := uc.repo.LogMovement(ctx, log); err != nil {
			return fmt.Errorf("failed to log movement: %w", err)
		}

		name, sku := p.Name, p.SKU
		log.ProductName, log.ProductSKU = &name, &sku
		summary = model.ProductSummary{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			PreviousStock: p.Stock,
			CurrentStock:  newStock,
		}
		minLevel = p.MinStockLevel
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	uc.logger.Info("Inventory adjusted",
		zap.String("product_id", summary.ID),
		zap.String("type", string(input.Type)),
		zap.Int("quantity_change", log.QuantityChange),
		zap.Int("new_stock", summary.CurrentStock),
	)
	if summary.CurrentStock <= minLevel {
		uc.logger.Warn("Product stock at or below minimum level",
			zap.String("product_id", summary.ID),
			zap.String("sku", summary.SKU),
			zap.Int("stock", summary.CurrentStock),
			zap.Int("min_stock_level", minLevel),
		)
	}

	if uc.notifier != nil {
		uc.notifier.ProductsChanged(ctx, summary.ID)
	}
	uc.publisher.Publish(ctx, summary.ID, event.New(event.TypeInventoryAdjusted, adjustedPayload{
		ProductID:      summary.ID,
		Type:           input.Type,
		QuantityChange: log.QuantityChange,
		PreviousStock:  log.PreviousStock,
		NewStock:       log.NewStock,
		PerformedBy:    log.PerformedBy,
	}))

	return &dto.AdjustmentResult{Log: log, Product: summary}, nil
}

func (uc *inventoryUseCase) ListLogs(ctx context.Context, filters *dto.LogFilters) ([]model.InventoryLog, int, error) {
	return uc.repo.ListLogs(ctx, filters)
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.LogFilters) (*dto.ProductMovements, error) {
	p, err := uc.products.FindByID(ctx, filters.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Product not found")
	}

	f := *filters
	f.Page, f.Limit = 1, movementsLimit
	movements, _, err := uc.repo.ListLogs(ctx, &f)
	if err != nil {
		return nil, err
	}

	return &dto.ProductMovements{
		Product: dto.ProductRef{
			ID:           p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			CurrentStock: p.Stock,
		},
		Movements: movements,
	}, nil
}
