package sale

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/sale/dto"
)

type UseCase interface {
	PostSale(ctx context.Context, input *dto.CreateSaleInput) (*model.Sale, error)
	CancelSale(ctx context.Context, input *dto.CancelSaleInput) (*model.Sale, error)
	UpdateSale(ctx context.Context, input *dto.UpdateSaleInput) (*model.Sale, error)
	GetSale(ctx context.Context, id string) (*model.Sale, error)
	GetSaleByInvoice(ctx context.Context, invoiceNumber string) (*model.Sale, error)
	ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
}
