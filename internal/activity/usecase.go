package activity

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/activity/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type UseCase interface {
	// Record stores an entry. Failures are logged, never returned to the caller.
	Record(ctx context.Context, log *model.ActivityLog)
	ListActivity(ctx context.Context, filters *dto.ActivityFilters) ([]model.ActivityLog, int, error)
}
