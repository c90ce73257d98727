package dto

type CreateCategoryInput struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
	Description string `json:"description"`

	CreatedBy string `json:"-"`
}

type UpdateCategoryInput struct {
	ID          string  `json:"-"`
	DisplayName *string `json:"displayName" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}
