package model

type Category struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	DisplayName string  `db:"display_name" json:"displayName"`
	Description string  `db:"description" json:"description"`
	IsActive    bool    `db:"is_active" json:"isActive"`
	CreatedBy   *string `db:"created_by" json:"createdBy,omitempty"`
}
