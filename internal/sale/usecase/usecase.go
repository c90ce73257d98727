package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/event"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	"github.com/fekuna/omnipos-pos-service/internal/sale"
	"github.com/fekuna/omnipos-pos-service/internal/sale/dto"
	"github.com/fekuna/omnipos-pos-service/internal/sale/sequence"
	"github.com/fekuna/omnipos-pos-service/internal/user"
	"github.com/fekuna/omnipos-pos-service/pkg/database"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/fekuna/omnipos-pos-service/internal/sale")

type Deps struct {
	Sales     sale.Repository
	Products  product.Repository
	Ledger    inventory.Repository
	Users     user.Repository
	Tx        database.Transactor
	Sequence  sequence.Generator
	Notifier  product.ChangeNotifier
	Publisher event.Publisher
	Logger    logger.ZapLogger
}

type saleUseCase struct {
	repo      sale.Repository
	products  product.Repository
	ledger    inventory.Repository
	users     user.Repository
	tx        database.Transactor
	seq       sequence.Generator
	notifier  product.ChangeNotifier
	publisher event.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewSaleUseCase(d Deps) sale.UseCase {
	if d.Publisher == nil {
		d.Publisher = event.NopPublisher{}
	}
	return &saleUseCase{
		repo:      d.Sales,
		products:  d.Products,
		ledger:    d.Ledger,
		users:     d.Users,
		tx:        d.Tx,
		seq:       d.Sequence,
		notifier:  d.Notifier,
		publisher: d.Publisher,
		logger:    d.Logger,
		now:       time.Now,
	}
}

// lockProducts takes row locks in ascending id order. Missing products map to nil.
// Ids that are not uuids are never queried, since a failed cast aborts the
// surrounding Postgres transaction.
func (uc *saleUseCase) lockProducts(ctx context.Context, ids []string) (map[string]*model.Product, error) {
	sorted := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			sorted = append(sorted, id)
		}
	}
	sort.Strings(sorted)

	locked := make(map[string]*model.Product, len(sorted))
	for _, id := range sorted {
		if _, err := uuid.Parse(id); err != nil {
			locked[id] = nil
			continue
		}
		p, err := uc.products.FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to lock product %s: %w", id, err)
		}
		locked[id] = p
	}
	return locked, nil
}

func (uc *saleUseCase) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperror.NotFound("Sale not found")
	}
	return s, uc.populate(ctx, s)
}

func (uc *saleUseCase) GetSaleByInvoice(ctx context.Context, invoiceNumber string) (*model.Sale, error) {
	s, err := uc.repo.FindByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperror.NotFound("Invoice not found")
	}
	return s, uc.populate(ctx, s)
}

func (uc *saleUseCase) ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error) {
	sales, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	ptrs := make([]*model.Sale, len(sales))
	for i := range sales {
		ptrs[i] = &sales[i]
	}
	if err := uc.populate(ctx, ptrs...); err != nil {
		return nil, 0, err
	}
	return sales, count, nil
}

// populate resolves soldBy into {id, name, email}.
func (uc *saleUseCase) populate(ctx context.Context, sales ...*model.Sale) error {
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.SoldByID)
	}

	users, err := uc.users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load sellers: %w", err)
	}
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, s := range sales {
		if u, ok := byID[s.SoldByID]; ok {
			s.SoldBy = u.Ref()
		} else {
			s.SoldBy = model.UserRef{ID: s.SoldByID}
		}
	}
	return nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

type saleItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type salePayload struct {
	SaleID        string            `json:"sale_id"`
	InvoiceNumber string            `json:"invoice_number"`
	Total         string            `json:"total"`
	Status        model.SaleStatus  `json:"status"`
	SoldBy        string            `json:"sold_by"`
	Items         []saleItemPayload `json:"items"`
}

func (uc *saleUseCase) afterCommit(ctx context.Context, eventType string, s *model.Sale) {
	ids := make([]string, 0, len(s.Items))
	items := make([]saleItemPayload, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.ProductID)
		items = append(items, saleItemPayload{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	if uc.notifier != nil {
		uc.notifier.ProductsChanged(ctx, ids...)
	}
	uc.publisher.Publish(ctx, s.ID, event.New(eventType, salePayload{
		SaleID:        s.ID,
		InvoiceNumber: s.InvoiceNumber,
		Total:         s.Total.String(),
		Status:        s.Status,
		SoldBy:        s.SoldByID,
		Items:         items,
	}))
}

func saleAttributes(s *model.Sale) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("sale.id", s.ID),
		attribute.String("sale.invoice_number", s.InvoiceNumber),
		attribute.Int("sale.items", len(s.Items)),
	}
}

func (uc *saleUseCase) logCommitted(msg string, s *model.Sale) {
	uc.logger.Info(msg,
		zap.String("sale_id", s.ID),
		zap.String("invoice_number", s.InvoiceNumber),
		zap.String("total", s.Total.String()),
		zap.String("sold_by", s.SoldByID),
	)
}
