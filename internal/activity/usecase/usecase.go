package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/activity"
	"github.com/fekuna/omnipos-pos-service/internal/activity/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type activityUseCase struct {
	repo   activity.Repository
	logger logger.ZapLogger
}

func NewActivityUseCase(repo activity.Repository, log logger.ZapLogger) activity.UseCase {
	return &activityUseCase{repo: repo, logger: log}
}

func (uc *activityUseCase) Record(ctx context.Context, log *model.ActivityLog) {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	if log.Status == "" {
		log.Status = model.ActivitySuccess
	}

	if err := uc.repo.Create(ctx, log); err != nil {
		uc.logger.Error("Error logging activity",
			zap.String("user_id", log.UserID),
			zap.String("action", string(log.Action)),
			zap.Error(err),
		)
	}
}

func (uc *activityUseCase) ListActivity(ctx context.Context, filters *dto.ActivityFilters) ([]model.ActivityLog, int, error) {
	return uc.repo.FindAll(ctx, filters)
}
