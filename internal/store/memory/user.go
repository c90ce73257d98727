package memory

import (
	"context"
	"sort"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/user"
	"github.com/fekuna/omnipos-pos-service/internal/user/dto"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	defer r.s.lock(ctx)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	defer r.s.lock(ctx)()
	out := []model.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	defer r.s.lock(ctx)()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(ctx context.Context, f *dto.UserFilters) ([]model.User, error) {
	defer r.s.lock(ctx)()
	out := []model.User{}
	for _, u := range r.s.users {
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		if f.IsActive != nil && u.IsActive != *f.IsActive {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.users[u.ID]; ok {
		r.s.users[u.ID] = *u
	}
	return nil
}

// Delete mirrors the foreign keys on users: sales, activity logs and
// categories keep their author.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	for _, s := range r.s.sales {
		if s.SoldByID == id {
			return user.ErrHasHistory
		}
	}
	for _, a := range r.s.activity {
		if a.UserID == id {
			return user.ErrHasHistory
		}
	}
	for _, c := range r.s.categories {
		if c.CreatedBy != nil && *c.CreatedBy == id {
			return user.ErrHasHistory
		}
	}
	delete(r.s.users, id)
	return nil
}
