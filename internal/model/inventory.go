package model

import "time"

type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementSale       MovementType = "sale"
	MovementAdjustment MovementType = "adjustment"
	MovementReturn     MovementType = "return"
	MovementDamage     MovementType = "damage"
	MovementInitial    MovementType = "initial"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementPurchase, MovementSale, MovementAdjustment, MovementReturn, MovementDamage, MovementInitial:
		return true
	}
	return false
}

const (
	ReferenceModelSale       = "Sale"
	ReferenceModelPurchase   = "Purchase"
	ReferenceModelAdjustment = "Adjustment"
)

// InventoryLog is one append-only ledger entry. NewStock always equals
// PreviousStock + QuantityChange.
type InventoryLog struct {
	ID             string       `db:"id" json:"id"`
	ProductID      string       `db:"product_id" json:"product"`
	Type           MovementType `db:"type" json:"type"`
	QuantityChange int          `db:"quantity_change" json:"quantityChange"`
	PreviousStock  int          `db:"previous_stock" json:"previousStock"`
	NewStock       int          `db:"new_stock" json:"newStock"`
	Reference      *string      `db:"reference" json:"reference,omitempty"`
	ReferenceID    *string      `db:"reference_id" json:"referenceId,omitempty"`
	ReferenceModel *string      `db:"reference_model" json:"referenceModel,omitempty"`
	Notes          *string      `db:"notes" json:"notes,omitempty"`
	PerformedBy    string       `db:"performed_by" json:"performedBy"`
	CreatedAt      time.Time    `db:"created_at" json:"createdAt"`

	// populated on reads
	ProductName   *string `db:"product_name" json:"productName,omitempty"`
	ProductSKU    *string `db:"product_sku" json:"productSku,omitempty"`
	PerformerName *string `db:"performer_name" json:"performerName,omitempty"`
}
