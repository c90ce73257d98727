package memory

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type LedgerRepository struct {
	s *Store
}

func (r *LedgerRepository) LogMovement(ctx context.Context, l *model.InventoryLog) error {
	defer r.s.lock(ctx)()
	r.s.ledger = append(r.s.ledger, *l)
	return nil
}

func (r *LedgerRepository) ListLogs(ctx context.Context, f *dto.LogFilters) ([]model.InventoryLog, int, error) {
	defer r.s.lock(ctx)()

	out := []model.InventoryLog{}
	for _, l := range r.s.ledger {
		if f.ProductID != "" && l.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && string(l.Type) != f.Type {
			continue
		}
		if !inRange(l.CreatedAt, f.StartDate, f.EndDate) {
			continue
		}
		out = append(out, r.populate(l))
	}
	newestFirst(out, func(l model.InventoryLog) time.Time { return l.CreatedAt })
	return paginate(out, f.Page, f.Limit), len(out), nil
}

func (r *LedgerRepository) populate(l model.InventoryLog) model.InventoryLog {
	if p, ok := r.s.products[l.ProductID]; ok {
		name, sku := p.Name, p.SKU
		l.ProductName, l.ProductSKU = &name, &sku
	}
	if u, ok := r.s.users[l.PerformedBy]; ok {
		name := u.Name
		l.PerformerName = &name
	}
	return l
}

// All returns every ledger entry in insertion order.
func (r *LedgerRepository) All() []model.InventoryLog {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]model.InventoryLog(nil), r.s.ledger...)
}
