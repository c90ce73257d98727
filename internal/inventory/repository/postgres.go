package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const logSelect = `
        SELECT l.id, l.product_id, l.type, l.quantity_change, l.previous_stock, l.new_stock,
               l.reference, l.reference_id, l.reference_model, l.notes, l.performed_by, l.created_at,
               p.name AS product_name, p.sku AS product_sku, u.name AS performer_name
        FROM inventory_logs l
        LEFT JOIN products p ON p.id = l.product_id
        LEFT JOIN users u ON u.id::text = l.performed_by`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.InventoryLog) error {
	query := `
        INSERT INTO inventory_logs (
            id, product_id, type, quantity_change, previous_stock, new_stock,
            reference, reference_id, reference_model, notes, performed_by, created_at
        )
        VALUES (
            :id, :product_id, :type, :quantity_change, :previous_stock, :new_stock,
            :reference, :reference_id, :reference_model, :notes, :performed_by, :created_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, m)
	return err
}

func (r *PGRepository) ListLogs(ctx context.Context, f *dto.LogFilters) ([]model.InventoryLog, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "l.product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.Type != "" {
		conditions = append(conditions, "l.type = :type")
		args["type"] = f.Type
	}
	if f.StartDate != nil {
		conditions = append(conditions, "l.created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "l.created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := postgres.Executor(ctx, r.DB)

	var count int
	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM inventory_logs l"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, db, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count inventory logs: %w", err)
	}

	query := logSelect + whereClause + " ORDER BY l.created_at DESC"
	if f.Limit > 0 {
		offset := (f.Page - 1) * f.Limit
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, offset)
	}
	query, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}

	items := []model.InventoryLog{}
	err = sqlx.SelectContext(ctx, db, &items, r.DB.Rebind(query), listArgs...)
	return items, count, err
}
