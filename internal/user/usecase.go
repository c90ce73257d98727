package user

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/user/dto"
)

// UseCase manages existing employee accounts. Accounts are provisioned
// together with their credentials elsewhere.
type UseCase interface {
	ListUsers(ctx context.Context, filters *dto.UserFilters) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error)
	DeactivateUser(ctx context.Context, id, actorID string) error
	DeleteUser(ctx context.Context, id, actorID string) error
}
