package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/cache"
	"github.com/fekuna/omnipos-pos-service/pkg/database"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/fekuna/omnipos-pos-service/pkg/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	indexName     = "products"
	listCacheTTL  = 5 * time.Minute
	listKeyPrefix = "products:list:"
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"description": { "type": "text" },
			"sku": { "type": "keyword" },
			"category": { "type": "keyword" },
			"isActive": { "type": "boolean" },
			"sellingPrice": { "type": "double" },
			"stock": { "type": "integer" },
			"createdAt": { "type": "date" }
		}
	}
}`

// listCache is the part of the Redis client the catalog uses.
type listCache interface {
	GetObject(ctx context.Context, key string, dest interface{}) (bool, error)
	SetObject(ctx context.Context, key string, obj interface{}, exp time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

type productUseCase struct {
	repo   product.Repository
	ledger inventory.Repository
	tx     database.Transactor
	cache  listCache
	es     *search.Client
	logger logger.ZapLogger

	indexOnce sync.Once
}

// NewProductUseCase wires the catalog. redis and es are optional.
func NewProductUseCase(
	repo product.Repository,
	ledger inventory.Repository,
	tx database.Transactor,
	redis *cache.RedisClient,
	es *search.Client,
	log logger.ZapLogger,
) product.UseCase {
	uc := &productUseCase{
		repo:   repo,
		ledger: ledger,
		tx:     tx,
		es:     es,
		logger: log,
	}
	if redis != nil {
		uc.cache = redis
	}
	return uc
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	unique, err := uc.repo.IsSKUUnique(ctx, sku, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperror.Conflict("SKU already exists")
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:          strings.TrimSpace(input.Name),
		Category:      normalizeCategory(input.Category),
		SKU:           sku,
		Description:   strings.TrimSpace(input.Description),
		Unit:          input.Unit,
		PurchasePrice: input.PurchasePrice,
		SellingPrice:  input.SellingPrice,
		Stock:         input.Stock,
		MinStockLevel: model.DefaultMinStockLevel,
		MaxStockLevel: model.DefaultMaxStockLevel,
		Supplier:      input.Supplier,
		ImageURL:      input.ImageURL,
		IsActive:      true,
	}
	if p.Unit == "" {
		p.Unit = model.UnitPiece
	}
	if input.MinStockLevel != nil {
		p.MinStockLevel = *input.MinStockLevel
	}
	if input.MaxStockLevel != nil {
		p.MaxStockLevel = *input.MaxStockLevel
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, p); err != nil {
			if postgres.IsUniqueViolation(err) {
				return apperror.Conflict("SKU already exists")
			}
			return fmt.Errorf("failed to insert product: %w", err)
		}

		notes := "Initial stock entry"
		return uc.ledger.LogMovement(ctx, &model.InventoryLog{
			ID:             uuid.New().String(),
			ProductID:      p.ID,
			Type:           model.MovementInitial,
			QuantityChange: p.Stock,
			PreviousStock:  0,
			NewStock:       p.Stock,
			Notes:          &notes,
			PerformedBy:    input.PerformedBy,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.ProductsChanged(ctx, p.ID)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Product not found")
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := ""
	if uc.cache != nil {
		cacheKey, _ = uc.generateCacheKey(filters)
		if cacheKey != "" {
			var cached cachedList
			if hit, err := uc.cache.GetObject(ctx, cacheKey, &cached); err == nil && hit {
				return cached.Products, cached.Count, nil
			}
		}
	}

	if filters.Search != "" && filters.StockStatus == "" && uc.es != nil {
		products, count, err := uc.searchProducts(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetObject(ctx, cacheKey, cachedList{Products: products, Count: count}, listCacheTTL); err != nil {
			uc.logger.Warn("failed to cache product list", zap.Error(err))
		}
	}
	return products, count, nil
}

func (uc *productUseCase) searchProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":     filters.Search,
				"fields":    []string{"name^3", "sku", "description"},
				"fuzziness": "AUTO",
			},
		},
	}
	filter := []map[string]interface{}{}
	if filters.Category != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"category": normalizeCategory(filters.Category)}})
	}
	if filters.IsActive != nil {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"isActive": *filters.IsActive}})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must, "filter": filter},
		},
	}
	if filters.Limit > 0 {
		q["from"] = (filters.Page - 1) * filters.Limit
		q["size"] = filters.Limit
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) ListLowStock(ctx context.Context) ([]model.Product, error) {
	return uc.repo.FindLowStock(ctx)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("Product not found")
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku != p.SKU {
			unique, err := uc.repo.IsSKUUnique(ctx, sku, p.ID)
			if err != nil {
				return nil, err
			}
			if !unique {
				return nil, apperror.Conflict("SKU already exists")
			}
		}
		p.SKU = sku
	}
	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		p.Category = normalizeCategory(*input.Category)
	}
	if input.Description != nil {
		p.Description = strings.TrimSpace(*input.Description)
	}
	if input.Unit != nil {
		p.Unit = *input.Unit
	}
	if input.PurchasePrice != nil {
		p.PurchasePrice = *input.PurchasePrice
	}
	if input.SellingPrice != nil {
		p.SellingPrice = *input.SellingPrice
	}
	if input.MinStockLevel != nil {
		p.MinStockLevel = *input.MinStockLevel
	}
	if input.MaxStockLevel != nil {
		p.MaxStockLevel = *input.MaxStockLevel
	}
	if input.Supplier != nil {
		p.Supplier = *input.Supplier
	}
	if input.ImageURL != nil {
		p.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperror.Conflict("SKU already exists")
		}
		return nil, err
	}

	uc.ProductsChanged(ctx, p.ID)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperror.NotFound("Product not found")
	}

	if err := uc.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	uc.ProductsChanged(ctx, id)
	return nil
}

// ProductsChanged drops cached lists before returning and reindexes the
// given products in the background.
func (uc *productUseCase) ProductsChanged(ctx context.Context, ids ...string) {
	if uc.cache != nil {
		uc.invalidateProductCache(context.WithoutCancel(ctx))
	}
	if uc.es != nil && len(ids) > 0 {
		go uc.syncToElastic(context.Background(), ids)
	}
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", listKeyPrefix, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if err := uc.cache.DeletePattern(ctx, listKeyPrefix+"*"); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, ids []string) {
	uc.indexOnce.Do(func() {
		if err := uc.es.CreateIndex(ctx, indexName, indexMapping); err != nil {
			uc.logger.Error("failed to create product index", zap.Error(err))
		}
	})

	for _, id := range ids {
		p, err := uc.repo.FindByID(ctx, id)
		if err != nil || p == nil {
			uc.logger.Error("failed to load product for indexing", zap.String("product_id", id), zap.Error(err))
			continue
		}
		if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
			uc.logger.Error("failed to index product", zap.String("product_id", id), zap.Error(err))
		}
	}
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
