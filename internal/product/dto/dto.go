package dto

type ProductFilters struct {
	Search      string `json:"search,omitempty"`
	Category    string `json:"category,omitempty"`
	StockStatus string `json:"stockStatus,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
}
