package model

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentUPI          PaymentMethod = "upi"
	PaymentCheque       PaymentMethod = "cheque"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	// PaymentStatusPending is accepted on update but never produced by posting.
	PaymentStatusPending PaymentStatus = "pending"
)

type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

const WalkInCustomer = "Walk-in Customer"

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

func (c Customer) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Customer) Scan(src interface{}) error {
	return scanJSON(src, c)
}

type Sale struct {
	BaseModel
	InvoiceNumber string          `db:"invoice_number" json:"invoiceNumber"`
	Items         []SaleItem      `db:"-" json:"items"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Tax           decimal.Decimal `db:"tax" json:"tax"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	Total         decimal.Decimal `db:"total" json:"total"`
	PaymentMethod PaymentMethod   `db:"payment_method" json:"paymentMethod"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"paymentStatus"`
	AmountPaid    decimal.Decimal `db:"amount_paid" json:"amountPaid"`
	AmountDue     decimal.Decimal `db:"amount_due" json:"amountDue"`
	Customer      Customer        `db:"customer" json:"customer"`
	SoldByID      string          `db:"sold_by" json:"-"`
	SoldBy        UserRef         `db:"-" json:"soldBy"`
	Status        SaleStatus      `db:"status" json:"status"`
	Notes         string          `db:"notes" json:"notes"`
}

// SaleItem is a line item owned by its sale. Name, SKU and unit price are
// captured when the sale is posted.
type SaleItem struct {
	ID          string          `db:"id" json:"id"`
	SaleID      string          `db:"sale_id" json:"-"`
	LineNo      int             `db:"line_no" json:"-"`
	ProductID   string          `db:"product_id" json:"product"`
	ProductName string          `db:"product_name" json:"productName"`
	SKU         string          `db:"sku" json:"sku"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Discount    decimal.Decimal `db:"discount" json:"discount"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
}
