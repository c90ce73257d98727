package dto

type CategoryFilters struct {
	ActiveOnly bool
}
