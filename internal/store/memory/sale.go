package memory

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/sale/dto"
)

type SaleRepository struct {
	s *Store
}

func (r *SaleRepository) Create(ctx context.Context, sale *model.Sale) error {
	defer r.s.lock(ctx)()
	stored := *sale
	stored.Items = append([]model.SaleItem(nil), sale.Items...)
	r.s.sales[sale.ID] = stored
	r.s.saleOrder = append(r.s.saleOrder, sale.ID)
	return nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id string) (*model.Sale, error) {
	defer r.s.lock(ctx)()
	return r.get(id), nil
}

func (r *SaleRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Sale, error) {
	return r.FindByID(ctx, id)
}

func (r *SaleRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*model.Sale, error) {
	defer r.s.lock(ctx)()
	for id, s := range r.s.sales {
		if s.InvoiceNumber == invoiceNumber {
			return r.get(id), nil
		}
	}
	return nil, nil
}

func (r *SaleRepository) get(id string) *model.Sale {
	s, ok := r.s.sales[id]
	if !ok {
		return nil
	}
	s.Items = append([]model.SaleItem(nil), s.Items...)
	return &s
}

func (r *SaleRepository) FindAll(ctx context.Context, f *dto.SaleFilters) ([]model.Sale, int, error) {
	defer r.s.lock(ctx)()

	out := []model.Sale{}
	for _, id := range r.s.saleOrder {
		s := r.s.sales[id]
		if f.SoldBy != "" && s.SoldByID != f.SoldBy {
			continue
		}
		if f.PaymentStatus != "" && string(s.PaymentStatus) != f.PaymentStatus {
			continue
		}
		if f.Status != "" && string(s.Status) != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(s.InvoiceNumber, f.Search) &&
			!containsFold(s.Customer.Name, f.Search) && !containsFold(s.Customer.Phone, f.Search) {
			continue
		}
		if !inRange(s.CreatedAt, f.StartDate, f.EndDate) {
			continue
		}
		out = append(out, *r.get(id))
	}
	newestFirst(out, func(s model.Sale) time.Time { return s.CreatedAt })
	return paginate(out, f.Page, f.Limit), len(out), nil
}

func (r *SaleRepository) Update(ctx context.Context, sale *model.Sale) error {
	defer r.s.lock(ctx)()
	existing, ok := r.s.sales[sale.ID]
	if !ok {
		return nil
	}
	existing.Customer = sale.Customer
	existing.Notes = sale.Notes
	existing.PaymentStatus = sale.PaymentStatus
	existing.AmountPaid = sale.AmountPaid
	existing.AmountDue = sale.AmountDue
	existing.Status = sale.Status
	existing.UpdatedAt = sale.UpdatedAt
	r.s.sales[sale.ID] = existing
	return nil
}
