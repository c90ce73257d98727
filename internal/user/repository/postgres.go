package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/user"
	"github.com/fekuna/omnipos-pos-service/internal/user/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, email, role, is_active, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PGRepository) get(ctx context.Context, query, arg string) (*model.User, error) {
	var u model.User
	if err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &u, query, arg); err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var users []model.User
	err = sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &users, query, args...)
	return users, err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.UserFilters) ([]model.User, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.Role != "" {
		args = append(args, f.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	users := []model.User{}
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &users, query, args...)
	return users, err
}

func (r *PGRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET name = :name, email = :email, role = :role, is_active = :is_active, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, u)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if postgres.IsForeignKeyViolation(err) {
		return user.ErrHasHistory
	}
	return err
}
