package dto

import (
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/shopspring/decimal"
)

type SaleItemInput struct {
	Product  string          `json:"product" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,gte=1"`
	Discount decimal.Decimal `json:"discount" binding:"gte=0"`
}

type CreateSaleInput struct {
	Items         []SaleItemInput     `json:"items" binding:"required,min=1,dive"`
	Customer      *model.Customer     `json:"customer"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash card upi cheque bank_transfer"`
	Tax           decimal.Decimal     `json:"tax" binding:"gte=0"`
	Discount      decimal.Decimal     `json:"discount" binding:"gte=0"`
	Notes         string              `json:"notes"`
	// AmountPaid defaults to the sale total when omitted.
	AmountPaid *decimal.Decimal `json:"amountPaid" binding:"omitempty,gte=0"`

	SoldBy string `json:"-"`
}

type CancelSaleInput struct {
	ID          string `json:"-"`
	Reason      string `json:"reason"`
	PerformedBy string `json:"-"`
}

type UpdateSaleInput struct {
	ID            string               `json:"-"`
	Customer      *model.Customer      `json:"customer"`
	Notes         *string              `json:"notes"`
	PaymentStatus *model.PaymentStatus `json:"paymentStatus" binding:"omitempty,oneof=paid partial pending"`
	AmountPaid    *decimal.Decimal     `json:"amountPaid" binding:"omitempty,gte=0"`
}
