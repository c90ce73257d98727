package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-pos-service/internal/activity/dto"
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

func (r *PGRepository) Create(ctx context.Context, a *model.ActivityLog) error {
	query := `
        INSERT INTO activity_logs (
            id, user_id, action, module, description, entity_type, entity_id,
            ip_address, user_agent, metadata, status, created_at
        )
        VALUES (
            :id, :user_id, :action, :module, :description, :entity_type, :entity_id,
            :ip_address, :user_agent, :metadata, :status, :created_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, a)
	return err
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ActivityFilters) ([]model.ActivityLog, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.UserID != "" {
		conditions = append(conditions, "a.user_id = :user_id")
		args["user_id"] = f.UserID
	}
	if f.Action != "" {
		conditions = append(conditions, "a.action = :action")
		args["action"] = f.Action
	}
	if f.Module != "" {
		conditions = append(conditions, "a.module = :module")
		args["module"] = f.Module
	}
	if f.StartDate != nil {
		conditions = append(conditions, "a.created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "a.created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := postgres.Executor(ctx, r.DB)

	var count int
	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM activity_logs a"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := sqlx.GetContext(ctx, db, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}

	query := `
        SELECT a.id, a.user_id, a.action, a.module, a.description, a.entity_type, a.entity_id,
               a.ip_address, a.user_agent, a.metadata, a.status, a.created_at, u.name AS user_name
        FROM activity_logs a
        LEFT JOIN users u ON u.id = a.user_id` + whereClause + " ORDER BY a.created_at DESC"
	if f.Limit > 0 {
		offset := (f.Page - 1) * f.Limit
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, offset)
	}
	query, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}

	logs := []model.ActivityLog{}
	err = sqlx.SelectContext(ctx, db, &logs, r.DB.Rebind(query), listArgs...)
	return logs, count, err
}
