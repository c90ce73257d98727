package repository

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/category/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, display_name, description, is_active, created_by, created_at, updated_at)
        VALUES (:id, :name, :display_name, :description, :is_active, :created_by, :created_at, :updated_at)
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return r.get(ctx, `SELECT * FROM categories WHERE id = $1`, id)
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	return r.get(ctx, `SELECT * FROM categories WHERE name = $1`, name)
}

func (r *PGRepository) get(ctx context.Context, query, arg string) (*model.Category, error) {
	var c model.Category
	if err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &c, query, arg); err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	query := `SELECT * FROM categories`
	if f.ActiveOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY display_name ASC`

	categories := []model.Category{}
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &categories, query)
	return categories, err
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories SET display_name = :display_name, description = :description,
            is_active = :is_active, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
