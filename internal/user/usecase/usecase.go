package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/user"
	"github.com/fekuna/omnipos-pos-service/internal/user/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"go.uber.org/zap"
)

type userUseCase struct {
	repo   user.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewUserUseCase(repo user.Repository, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

func (uc *userUseCase) ListUsers(ctx context.Context, filters *dto.UserFilters) ([]model.User, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("User not found")
	}
	return u, nil
}

func (uc *userUseCase) UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error) {
	u, err := uc.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.IsActive != nil && !*input.IsActive && u.ID == input.ActorID {
		return nil, apperror.InvalidArgument("Cannot deactivate your own account")
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		u.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != u.Email {
			existing, err := uc.repo.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.Conflict("User already exists with this email")
			}
			u.Email = email
		}
	}
	if input.Role != nil {
		u.Role = *input.Role
	}
	if input.IsActive != nil {
		u.IsActive = *input.IsActive
	}
	u.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, u); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, apperror.Conflict("User already exists with this email")
		}
		return nil, err
	}

	uc.logger.Info("Employee updated", zap.String("user_id", u.ID), zap.String("actor_id", input.ActorID))
	return u, nil
}

func (uc *userUseCase) DeactivateUser(ctx context.Context, id, actorID string) error {
	u, err := uc.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.ID == actorID {
		return apperror.InvalidArgument("Cannot deactivate your own account")
	}

	u.IsActive = false
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return err
	}

	uc.logger.Info("Employee deactivated", zap.String("user_id", u.ID), zap.String("actor_id", actorID))
	return nil
}

// DeleteUser removes an account for good. Employees with recorded history can
// only be deactivated.
func (uc *userUseCase) DeleteUser(ctx context.Context, id, actorID string) error {
	u, err := uc.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.ID == actorID {
		return apperror.InvalidArgument("Cannot delete your own account")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, user.ErrHasHistory) {
			return apperror.Conflict("Employee has recorded sales or activity. Deactivate the account instead")
		}
		return err
	}

	uc.logger.Info("Employee deleted", zap.String("user_id", id), zap.String("actor_id", actorID))
	return nil
}
