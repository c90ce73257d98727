package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/sale/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateSale edits customer, notes and payment details. Items and totals are fixed.
func (uc *saleUseCase) UpdateSale(ctx context.Context, input *dto.UpdateSaleInput) (*model.Sale, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, apperror.NotFound("Sale not found")
	}

	var s *model.Sale
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		s, err = uc.repo.FindByIDForUpdate(ctx, input.ID)
		if err != nil {
			return fmt.Errorf("failed to load sale: %w", err)
		}
		if s == nil {
			return apperror.NotFound("Sale not found")
		}
		if s.Status == model.SaleStatusCancelled {
			return apperror.InvalidState("Cancelled sales cannot be updated")
		}

		if input.Customer != nil {
			s.Customer = *input.Customer
		}
		if input.Notes != nil {
			s.Notes = *input.Notes
		}
		if input.PaymentStatus != nil {
			s.PaymentStatus = *input.PaymentStatus
		}
		if input.AmountPaid != nil {
			if input.AmountPaid.IsNegative() {
				return apperror.InvalidArgument("Amount paid cannot be negative")
			}
			s.AmountPaid = *input.AmountPaid
			due := s.Total.Sub(s.AmountPaid)
			switch {
			case due.LessThanOrEqual(decimal.Zero):
				s.PaymentStatus = model.PaymentStatusPaid
				s.AmountDue = decimal.Zero
			default:
				s.AmountDue = due
				if input.PaymentStatus == nil {
					s.PaymentStatus = model.PaymentStatusPartial
				}
			}
		}
		s.UpdatedAt = uc.now()

		return uc.repo.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.populate(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
