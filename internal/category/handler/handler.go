package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-pos-service/internal/api"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/category"
	"github.com/fekuna/omnipos-pos-service/internal/category/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) ListActive(c *gin.Context) {
	h.list(c, true)
}

func (h *CategoryHandler) ListAll(c *gin.Context) {
	h.list(c, false)
}

func (h *CategoryHandler) list(c *gin.Context, activeOnly bool) {
	categories, err := h.uc.ListCategories(c.Request.Context(), &dto.CategoryFilters{ActiveOnly: activeOnly})
	if err != nil {
		api.Error(c, h.logger, err, "fetching categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input dto.CreateCategoryInput
	if !api.BindJSON(c, &input) {
		return
	}
	input.CreatedBy = auth.CurrentUser(c).ID

	cat, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		api.Error(c, h.logger, err, "creating category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created successfully", "category": cat})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var input dto.UpdateCategoryInput
	if !api.BindJSON(c, &input) {
		return
	}
	input.ID = c.Param("id")

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &input)
	if err != nil {
		api.Error(c, h.logger, err, "updating category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully", "category": cat})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.uc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		api.Error(c, h.logger, err, "deleting category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category permanently deleted"})
}
