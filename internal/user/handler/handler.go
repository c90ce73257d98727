package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-pos-service/internal/api"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/user"
	"github.com/fekuna/omnipos-pos-service/internal/user/dto"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	filters := &dto.UserFilters{Role: c.Query("role")}
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}

	users, err := h.uc.ListUsers(c.Request.Context(), filters)
	if err != nil {
		api.Error(c, h.logger, err, "fetching users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.uc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.Error(c, h.logger, err, "fetching user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var input dto.UpdateUserInput
	if !api.BindJSON(c, &input) {
		return
	}
	input.ID = c.Param("id")
	input.ActorID = auth.CurrentUser(c).ID

	u, err := h.uc.UpdateUser(c.Request.Context(), &input)
	if err != nil {
		api.Error(c, h.logger, err, "updating user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee updated successfully", "user": u})
}

func (h *UserHandler) DeactivateUser(c *gin.Context) {
	if err := h.uc.DeactivateUser(c.Request.Context(), c.Param("id"), auth.CurrentUser(c).ID); err != nil {
		api.Error(c, h.logger, err, "deactivating user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deactivated successfully"})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.uc.DeleteUser(c.Request.Context(), c.Param("id"), auth.CurrentUser(c).ID); err != nil {
		api.Error(c, h.logger, err, "deleting user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee permanently deleted"})
}
