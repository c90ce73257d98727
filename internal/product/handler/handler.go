package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-pos-service/internal/api"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/product"
	"github.com/fekuna/omnipos-pos-service/internal/product/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	page := api.Pagination(c, 10)
	products, total, err := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		StockStatus: c.Query("stockStatus"),
		IsActive:    api.BoolQuery(c, "isActive"),
		Page:        page.Page,
		Limit:       page.Limit,
	})
	if err != nil {
		api.Error(c, h.logger, err, "fetching products")
		return
	}
	c.JSON(http.StatusOK, api.Paginated("products", products, total, page))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.Error(c, h.logger, err, "fetching product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input dto.CreateProductInput
	if !api.BindJSON(c, &input) {
		return
	}
	input.PerformedBy = auth.CurrentUser(c).ID

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		api.Error(c, h.logger, err, "creating product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": p})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var input dto.UpdateProductInput
	if !api.BindJSON(c, &input) {
		return
	}
	input.ID = c.Param("id")

	p, err := h.uc.UpdateProduct(c.Request.Context(), &input)
	if err != nil {
		api.Error(c, h.logger, err, "updating product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": p})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		api.Error(c, h.logger, err, "deleting product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated successfully"})
}

func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.uc.ListLowStock(c.Request.Context())
	if err != nil {
		api.Error(c, h.logger, err, "fetching low stock products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}
