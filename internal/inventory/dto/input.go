package dto

import "github.com/fekuna/omnipos-pos-service/internal/model"

// AdjustInventoryInput is a manual or event-driven stock correction.
// Quantity is signed; its meaning depends on Type.
type AdjustInventoryInput struct {
	ProductID string             `json:"productId"`
	Quantity  *int               `json:"quantity"`
	Type      model.MovementType `json:"type"`
	Notes     string             `json:"notes"`
	Reference string             `json:"reference"`

	PerformedBy string `json:"-"`
}
