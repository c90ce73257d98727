package dto

import "time"

type ActivityFilters struct {
	UserID    string
	Action    string
	Module    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}
