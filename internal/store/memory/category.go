package memory

import (
	"context"
	"sort"

	"github.com/fekuna/omnipos-pos-service/internal/category/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	defer r.s.lock(ctx)()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	defer r.s.lock(ctx)()
	for _, c := range r.s.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	defer r.s.lock(ctx)()
	out := []model.Category{}
	for _, c := range r.s.categories {
		if f.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.categories[c.ID]; ok {
		r.s.categories[c.ID] = *c
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	delete(r.s.categories, id)
	return nil
}
