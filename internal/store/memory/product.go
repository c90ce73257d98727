package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
)

type ProductRepository struct {
	s *Store
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	defer r.s.lock(ctx)()
	r.s.products[p.ID] = *p
	r.s.productOrder = append(r.s.productOrder, p.ID)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// FindByIDForUpdate needs no row lock: transactions are already serialised.
func (r *ProductRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *ProductRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	defer r.s.lock(ctx)()

	out := []model.Product{}
	for _, id := range r.s.productOrder {
		p := r.s.products[id]
		if f.Search != "" && !containsFold(p.Name, f.Search) && !containsFold(p.SKU, f.Search) && !containsFold(p.Description, f.Search) {
			continue
		}
		if f.Category != "" && p.Category != strings.ToLower(f.Category) {
			continue
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		if f.StockStatus != "" && string(p.StockStatus()) != f.StockStatus {
			continue
		}
		out = append(out, p)
	}
	newestFirst(out, func(p model.Product) time.Time { return p.CreatedAt })
	return paginate(out, f.Page, f.Limit), len(out), nil
}

func (r *ProductRepository) FindLowStock(ctx context.Context) ([]model.Product, error) {
	defer r.s.lock(ctx)()

	out := []model.Product{}
	for _, id := range r.s.productOrder {
		p := r.s.products[id]
		if p.IsActive && p.Stock <= p.MinStockLevel {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	defer r.s.lock(ctx)()
	existing, ok := r.s.products[p.ID]
	if !ok {
		return nil
	}
	updated := *p
	updated.Stock = existing.Stock
	r.s.products[p.ID] = updated
	return nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	defer r.s.lock(ctx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *ProductRepository) Deactivate(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *ProductRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	defer r.s.lock(ctx)()
	sku = strings.TrimSpace(sku)
	for id, p := range r.s.products {
		if p.SKU == sku && id != excludeID {
			return false, nil
		}
	}
	return true, nil
}
