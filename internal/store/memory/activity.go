package memory

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/activity/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type ActivityRepository struct {
	s *Store
}

func (r *ActivityRepository) Create(ctx context.Context, a *model.ActivityLog) error {
	defer r.s.lock(ctx)()
	r.s.activity = append(r.s.activity, *a)
	return nil
}

func (r *ActivityRepository) FindAll(ctx context.Context, f *dto.ActivityFilters) ([]model.ActivityLog, int, error) {
	defer r.s.lock(ctx)()

	out := []model.ActivityLog{}
	for _, a := range r.s.activity {
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.Action != "" && string(a.Action) != f.Action {
			continue
		}
		if f.Module != "" && string(a.Module) != f.Module {
			continue
		}
		if !inRange(a.CreatedAt, f.StartDate, f.EndDate) {
			continue
		}
		if u, ok := r.s.users[a.UserID]; ok {
			name := u.Name
			a.UserName = &name
		}
		out = append(out, a)
	}
	newestFirst(out, func(a model.ActivityLog) time.Time { return a.CreatedAt })
	return paginate(out, f.Page, f.Limit), len(out), nil
}
