package dto

import "time"

type SaleFilters struct {
	SoldBy        string
	PaymentStatus string
	Status        string
	// Search matches invoice number, customer name and phone.
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}
