package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, name, category, sku, description, unit, purchase_price, selling_price,
        stock, min_stock_level, max_stock_level, supplier, image_url, is_active, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (` + productColumns + `)
        VALUES (
            :id, :name, :category, :sku, :description, :unit, :purchase_price, :selling_price,
            :stock, :min_stock_level, :max_stock_level, :supplier, :image_url, :is_active, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *PGRepository) get(ctx context.Context, query string, id string) (*model.Product, error) {
	var product model.Product
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &product, query, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}
	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = strings.ToLower(f.Category)
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	switch model.StockStatus(f.StockStatus) {
	case model.StockStatusOutOfStock:
		conditions = append(conditions, "stock = 0")
	case model.StockStatusLow:
		conditions = append(conditions, "stock > 0 AND stock <= min_stock_level")
	case model.StockStatusOverstock:
		conditions = append(conditions, "stock >= max_stock_level")
	case model.StockStatusInStock:
		conditions = append(conditions, "stock > min_stock_level AND stock < max_stock_level")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := postgres.Executor(ctx, r.DB)

	var count int
	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM products"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, db, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := "SELECT " + productColumns + " FROM products" + whereClause + " ORDER BY created_at DESC"
	if f.Limit > 0 {
		offset := (f.Page - 1) * f.Limit
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, offset)
	}
	query, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}

	products := []model.Product{}
	err = sqlx.SelectContext(ctx, db, &products, r.DB.Rebind(query), listArgs...)
	return products, count, err
}

func (r *PGRepository) FindLowStock(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	query := `SELECT ` + productColumns + ` FROM products
        WHERE is_active = TRUE AND stock <= min_stock_level
        ORDER BY stock ASC`
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &products, query)
	return products, err
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products SET
            name = :name, category = :category, sku = :sku, description = :description, unit = :unit,
            purchase_price = :purchase_price, selling_price = :selling_price,
            min_stock_level = :min_stock_level, max_stock_level = :max_stock_level,
            supplier = :supplier, image_url = :image_url, is_active = :is_active, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, p)
	return err
}

func (r *PGRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	query := `UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, query, stock, id)
	return err
}

func (r *PGRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, query, id)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE sku = $1`
	args := []interface{}{strings.TrimSpace(sku)}

	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	if err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}
