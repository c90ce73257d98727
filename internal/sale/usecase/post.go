package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/event"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/sale/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func validateSaleInput(input *dto.CreateSaleInput) error {
	if len(input.Items) == 0 {
		return apperror.InvalidArgument("At least one item is required")
	}
	for _, it := range input.Items {
		if it.Product == "" {
			return apperror.InvalidArgument("Product is required for every item")
		}
		if _, err := uuid.Parse(it.Product); err != nil {
			return apperror.NotFound("Product not found: %s", it.Product)
		}
		if it.Quantity < 1 {
			return apperror.InvalidArgument("Quantity must be at least 1")
		}
		if it.Discount.IsNegative() {
			return apperror.InvalidArgument("Item discount cannot be negative")
		}
	}
	switch input.PaymentMethod {
	case model.PaymentCash, model.PaymentCard, model.PaymentUPI, model.PaymentCheque, model.PaymentBankTransfer:
	default:
		return apperror.InvalidArgument("Invalid payment method: %s", input.PaymentMethod)
	}
	if input.Tax.IsNegative() || input.Discount.IsNegative() {
		return apperror.InvalidArgument("Tax and discount cannot be negative")
	}
	if input.AmountPaid != nil && input.AmountPaid.IsNegative() {
		return apperror.InvalidArgument("Amount paid cannot be negative")
	}
	return nil
}

// PostSale records a completed sale and takes its items out of stock.
// Everything is written in one transaction.
func (uc *saleUseCase) PostSale(ctx context.Context, input *dto.CreateSaleInput) (*model.Sale, error) {
	ctx, span := tracer.Start(ctx, "sale.PostSale")
	defer span.End()

	if err := validateSaleInput(input); err != nil {
		fail(span, err)
		return nil, err
	}

	customer := model.Customer{Name: model.WalkInCustomer}
	if input.Customer != nil && input.Customer.Name != "" {
		customer = *input.Customer
	}

	var s *model.Sale
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		ids := make([]string, len(input.Items))
		for i, it := range input.Items {
			ids[i] = it.Product
		}
		locked, err := uc.lockProducts(ctx, ids)
		if err != nil {
			return err
		}

		requested := map[string]int{}
		for _, it := range input.Items {
			p := locked[it.Product]
			if p == nil {
				return apperror.NotFound("Product not found: %s", it.Product)
			}
			if !p.IsActive {
				return apperror.InvalidState("Product is inactive: %s", p.Name)
			}
			requested[p.ID] += it.Quantity
			if requested[p.ID] > p.Stock {
				return apperror.InsufficientStock("Insufficient stock for %s. Available: %d", p.Name, p.Stock)
			}
		}

		now := uc.now()
		s = &model.Sale{
			BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			PaymentMethod: input.PaymentMethod,
			Customer:      customer,
			SoldByID:      input.SoldBy,
			Status:        model.SaleStatusCompleted,
			Notes:         input.Notes,
			Tax:           input.Tax,
			Discount:      input.Discount,
		}

		subtotal := decimal.Zero
		for i, it := range input.Items {
			p := locked[it.Product]
			line := p.SellingPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Sub(it.Discount)
			s.Items = append(s.Items, model.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      s.ID,
				LineNo:      i + 1,
				ProductID:   p.ID,
				ProductName: p.Name,
				SKU:         p.SKU,
				Quantity:    it.Quantity,
				UnitPrice:   p.SellingPrice,
				Discount:    it.Discount,
				Subtotal:    line,
			})
			subtotal = subtotal.Add(line)
		}

		s.Subtotal = subtotal
		s.Total = subtotal.Add(input.Tax).Sub(input.Discount)
		if s.Total.IsNegative() {
			return apperror.InvalidArgument("Discount cannot exceed subtotal plus tax")
		}
		applyPayment(s, input.AmountPaid)

		s.InvoiceNumber, err = uc.seq.Next(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate invoice number: %w", err)
		}

		if err := uc.repo.Create(ctx, s); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}

		for _, item := range s.Items {
			p := locked[item.ProductID]
			if err := uc.moveStock(ctx, p, -item.Quantity, model.MovementSale, s.InvoiceNumber, s.ID, nil, input.SoldBy, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(saleAttributes(s)...)

	if err := uc.populate(ctx, s); err != nil {
		return nil, err
	}
	uc.logCommitted("Sale created", s)
	uc.afterCommit(ctx, event.TypeSaleCreated, s)
	return s, nil
}

// applyPayment sets amountPaid, amountDue and paymentStatus from total.
// A nil amountPaid means the sale was paid in full.
func applyPayment(s *model.Sale, amountPaid *decimal.Decimal) {
	s.AmountPaid = s.Total
	if amountPaid != nil {
		s.AmountPaid = *amountPaid
	}

	due := s.Total.Sub(s.AmountPaid)
	if due.LessThanOrEqual(decimal.Zero) {
		s.PaymentStatus = model.PaymentStatusPaid
		s.AmountDue = decimal.Zero
		return
	}
	s.PaymentStatus = model.PaymentStatusPartial
	s.AmountDue = due
}

// moveStock writes the product's new stock and the matching ledger entry.
// p.Stock is updated in place so repeated lines see the running value.
func (uc *saleUseCase) moveStock(
	ctx context.Context,
	p *model.Product,
	change int,
	typ model.MovementType,
	reference, saleID string,
	notes *string,
	performedBy string,
	at time.Time,
) error {
	previous := p.Stock
	p.Stock += change
	if p.Stock < 0 {
		return apperror.InsufficientStock("Insufficient stock for %s. Available: %d", p.Name, previous)
	}

	if err := uc.products.UpdateStock(ctx, p.ID, p.Stock); err != nil {
		return fmt.Errorf("failed to update stock for %s: %w", p.ID, err)
	}

	refModel := model.ReferenceModelSale
	return uc.ledger.LogMovement(ctx, &model.InventoryLog{
		ID:             uuid.New().String(),
		ProductID:      p.ID,
		Type:           typ,
		QuantityChange: change,
		PreviousStock:  previous,
		NewStock:       p.Stock,
		Reference:      &reference,
		ReferenceID:    &saleID,
		ReferenceModel: &refModel,
		Notes:          notes,
		PerformedBy:    performedBy,
		CreatedAt:      at,
	})
}
