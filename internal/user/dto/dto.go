package dto

type UserFilters struct {
	Role     string
	IsActive *bool
}
