package dto

import "github.com/fekuna/omnipos-pos-service/internal/model"

type UpdateUserInput struct {
	ID       string      `json:"-"`
	Name     *string     `json:"name" binding:"omitempty,min=1"`
	Email    *string     `json:"email" binding:"omitempty,email"`
	Role     *model.Role `json:"role" binding:"omitempty,oneof=admin manager cashier"`
	IsActive *bool       `json:"isActive"`

	ActorID string `json:"-"`
}
