package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// money fields go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UserRef is the populated form of a user reference.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
