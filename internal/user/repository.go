package user

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/user/dto"
)

// ErrHasHistory is returned by Delete while sales, activity or catalog
// records still point at the employee.
var ErrHasHistory = errors.New("user is referenced by recorded history")

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context, filters *dto.UserFilters) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}
