package activity

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/activity/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	FindAll(ctx context.Context, filters *dto.ActivityFilters) ([]model.ActivityLog, int, error)
}
