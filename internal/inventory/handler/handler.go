package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-pos-service/internal/api"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) AdjustInventory(c *gin.Context) {
	var input dto.AdjustInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID, quantity, and type are required"})
		return
	}
	input.PerformedBy = auth.CurrentUser(c).ID

	res, err := h.uc.AdjustInventory(c.Request.Context(), &input)
	if err != nil {
		api.Error(c, h.logger, err, "adjusting inventory")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory adjusted successfully",
		"log":     res.Log,
		"product": res.Product,
	})
}

func (h *InventoryHandler) ListLogs(c *gin.Context) {
	page := api.Pagination(c, 20)
	start, end := api.DateRange(c)

	logs, total, err := h.uc.ListLogs(c.Request.Context(), &dto.LogFilters{
		ProductID: c.Query("productId"),
		Type:      c.Query("type"),
		StartDate: start,
		EndDate:   end,
		Page:      page.Page,
		Limit:     page.Limit,
	})
	if err != nil {
		api.Error(c, h.logger, err, "fetching inventory logs")
		return
	}
	c.JSON(http.StatusOK, api.Paginated("logs", logs, total, page))
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	start, end := api.DateRange(c)

	res, err := h.uc.ListMovements(c.Request.Context(), &dto.LogFilters{
		ProductID: c.Param("productId"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		api.Error(c, h.logger, err, "fetching inventory movements")
		return
	}
	c.JSON(http.StatusOK, res)
}
