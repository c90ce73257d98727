package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/sale/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const saleColumns = `id, invoice_number, subtotal, tax, discount, total, payment_method, payment_status,
        amount_paid, amount_due, customer, sold_by, status, notes, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.Sale) error {
	db := postgres.Executor(ctx, r.DB)

	query := `
        INSERT INTO sales (` + saleColumns + `)
        VALUES (
            :id, :invoice_number, :subtotal, :tax, :discount, :total, :payment_method, :payment_status,
            :amount_paid, :amount_due, :customer, :sold_by, :status, :notes, :created_at, :updated_at
        )
    `
	if _, err := sqlx.NamedExecContext(ctx, db, query, s); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	itemQuery := `
        INSERT INTO sale_items (
            id, sale_id, line_no, product_id, product_name, sku, quantity, unit_price, discount, subtotal
        )
        VALUES (
            :id, :sale_id, :line_no, :product_id, :product_name, :sku, :quantity, :unit_price, :discount, :subtotal
        )
    `
	for i := range s.Items {
		if _, err := sqlx.NamedExecContext(ctx, db, itemQuery, &s.Items[i]); err != nil {
			return fmt.Errorf("failed to insert sale item: %w", err)
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

func (r *PGRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *PGRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*model.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE invoice_number = $1`, invoiceNumber)
}

func (r *PGRepository) get(ctx context.Context, query, arg string) (*model.Sale, error) {
	var s model.Sale
	if err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &s, query, arg); err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	sales := []model.Sale{s}
	if err := r.loadItems(ctx, sales); err != nil {
		return nil, err
	}
	return &sales[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SaleFilters) ([]model.Sale, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.SoldBy != "" {
		conditions = append(conditions, "sold_by = :sold_by")
		args["sold_by"] = f.SoldBy
	}
	if f.PaymentStatus != "" {
		conditions = append(conditions, "payment_status = :payment_status")
		args["payment_status"] = f.PaymentStatus
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Search != "" {
		conditions = append(conditions, "(invoice_number ILIKE :search OR customer->>'name' ILIKE :search OR customer->>'phone' ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := postgres.Executor(ctx, r.DB)

	var count int
	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM sales"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, db, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := "SELECT " + saleColumns + " FROM sales" + whereClause + " ORDER BY created_at DESC"
	if f.Limit > 0 {
		offset := (f.Page - 1) * f.Limit
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, offset)
	}
	query, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}

	sales := []model.Sale{}
	if err := sqlx.SelectContext(ctx, db, &sales, r.DB.Rebind(query), listArgs...); err != nil {
		return nil, 0, err
	}
	if err := r.loadItems(ctx, sales); err != nil {
		return nil, 0, err
	}
	return sales, count, nil
}

// loadItems fills Items for every sale with a single query.
func (r *PGRepository) loadItems(ctx context.Context, sales []model.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]string, len(sales))
	index := make(map[string]int, len(sales))
	for i := range sales {
		ids[i] = sales[i].ID
		index[sales[i].ID] = i
		sales[i].Items = []model.SaleItem{}
	}

	query, args, err := sqlx.In(`SELECT * FROM sale_items WHERE sale_id IN (?) ORDER BY line_no ASC`, ids)
	if err != nil {
		return err
	}

	var items []model.SaleItem
	if err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &items, r.DB.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load sale items: %w", err)
	}
	for _, it := range items {
		i := index[it.SaleID]
		sales[i].Items = append(sales[i].Items, it)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.Sale) error {
	query := `
        UPDATE sales SET
            customer = :customer, notes = :notes, payment_status = :payment_status,
            amount_paid = :amount_paid, amount_due = :amount_due, status = :status, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, s)
	return err
}
