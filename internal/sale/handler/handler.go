package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/fekuna/omnipos-pos-service/internal/api"
	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/sale"
	"github.com/fekuna/omnipos-pos-service/internal/sale/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/idempotency"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const IdempotencyHeader = "Idempotency-Key"

type SaleHandler struct {
	uc     sale.UseCase
	guard  idempotency.Store
	logger logger.ZapLogger
}

// NewSaleHandler builds the handler. guard may be nil, which disables
// Idempotency-Key support.
func NewSaleHandler(uc sale.UseCase, guard idempotency.Store, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{uc: uc, guard: guard, logger: log}
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	var input dto.CreateSaleInput
	if !api.BindJSON(c, &input) {
		return
	}
	input.SoldBy = auth.CurrentUser(c).ID

	key := c.GetHeader(IdempotencyHeader)
	if key == "" || h.guard == nil {
		h.postSale(c, &input)
		return
	}

	ctx := c.Request.Context()
	key = idempotency.ScopedKey(input.SoldBy, key)
	fingerprint, err := idempotency.Fingerprint(&input)
	if err != nil {
		api.Error(c, h.logger, err, "creating sale")
		return
	}

	existingID, release, err := h.guard.Acquire(ctx, key, fingerprint)
	if err != nil {
		switch {
		case errors.Is(err, idempotency.ErrInFlight):
			c.JSON(http.StatusConflict, gin.H{"message": "A sale with this Idempotency-Key is already being processed"})
		case errors.Is(err, idempotency.ErrKeyReused):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Idempotency-Key was already used for a different sale"})
		default:
			api.Error(c, h.logger, err, "creating sale")
		}
		return
	}

	if existingID != "" {
		s, err := h.uc.GetSale(ctx, existingID)
		if err != nil {
			api.Error(c, h.logger, err, "creating sale")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Sale created successfully", "sale": s})
		return
	}
	defer release()

	s := h.postSale(c, &input)
	if s == nil {
		return
	}
	if err := h.guard.Complete(ctx, key, fingerprint, s.ID); err != nil {
		h.logger.Warn("failed to store idempotency result", zap.String("sale_id", s.ID), zap.Error(err))
	}
}

func (h *SaleHandler) postSale(c *gin.Context, input *dto.CreateSaleInput) *model.Sale {
	s, err := h.uc.PostSale(c.Request.Context(), input)
	if err != nil {
		api.Error(c, h.logger, err, "creating sale")
		return nil
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sale created successfully", "sale": s})
	return s
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	page := api.Pagination(c, 10)
	start, end := api.DateRange(c)
	filters := &dto.SaleFilters{
		PaymentStatus: c.Query("paymentStatus"),
		Status:        c.Query("status"),
		StartDate:     start,
		EndDate:       end,
		Page:          page.Page,
		Limit:         page.Limit,
	}

	u := auth.CurrentUser(c)
	if u.Role == model.RoleCashier {
		filters.SoldBy = u.ID
	}

	sales, total, err := h.uc.ListSales(c.Request.Context(), filters)
	if err != nil {
		api.Error(c, h.logger, err, "fetching sales")
		return
	}
	c.JSON(http.StatusOK, api.Paginated("sales", sales, total, page))
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	s, err := h.uc.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.Error(c, h.logger, err, "fetching sale")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sale": s})
}

func (h *SaleHandler) UpdateSale(c *gin.Context) {
	var input dto.UpdateSaleInput
	if !api.BindJSON(c, &input) {
		return
	}
	input.ID = c.Param("id")

	s, err := h.uc.UpdateSale(c.Request.Context(), &input)
	if err != nil {
		api.Error(c, h.logger, err, "updating sale")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale updated successfully", "sale": s})
}

func (h *SaleHandler) CancelSale(c *gin.Context) {
	var input dto.CancelSaleInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	input.ID = c.Param("id")
	input.PerformedBy = auth.CurrentUser(c).ID

	s, err := h.uc.CancelSale(c.Request.Context(), &input)
	if err != nil {
		api.Error(c, h.logger, err, "cancelling sale")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale cancelled successfully", "sale": s})
}

// Invoices are read-only views over sales.

func (h *SaleHandler) ListInvoices(c *gin.Context) {
	page := api.Pagination(c, 10)
	invoices, total, err := h.uc.ListSales(c.Request.Context(), &dto.SaleFilters{
		Search: c.Query("search"),
		Page:   page.Page,
		Limit:  page.Limit,
	})
	if err != nil {
		api.Error(c, h.logger, err, "fetching invoices")
		return
	}
	c.JSON(http.StatusOK, api.Paginated("invoices", invoices, total, page))
}

func (h *SaleHandler) GetInvoice(c *gin.Context) {
	s, err := h.uc.GetSale(c.Request.Context(), c.Param("id"))
	h.writeInvoice(c, s, err)
}

func (h *SaleHandler) GetInvoiceByNumber(c *gin.Context) {
	s, err := h.uc.GetSaleByInvoice(c.Request.Context(), c.Param("invoiceNumber"))
	h.writeInvoice(c, s, err)
}

func (h *SaleHandler) writeInvoice(c *gin.Context, s *model.Sale, err error) {
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Invoice not found"})
			return
		}
		api.Error(c, h.logger, err, "fetching invoice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": s})
}
