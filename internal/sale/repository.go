package sale

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/sale/dto"
)

type Repository interface {
	// Create stores the sale header and its line items.
	Create(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id string) (*model.Sale, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.Sale, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*model.Sale, error)
	FindAll(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
	// Update writes the mutable header fields: customer, notes, payment and status.
	Update(ctx context.Context, sale *model.Sale) error
}
