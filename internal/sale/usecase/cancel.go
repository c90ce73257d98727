package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/event"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/sale/dto"
	"github.com/google/uuid"
)

// CancelSale puts every item back in stock and marks the sale cancelled.
func (uc *saleUseCase) CancelSale(ctx context.Context, input *dto.CancelSaleInput) (*model.Sale, error) {
	ctx, span := tracer.Start(ctx, "sale.CancelSale")
	defer span.End()

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
			return apperror.InvalidState("Sale is already cancelled")
		}

		ids := make([]string, len(s.Items))
		for i, it := range s.Items {
			ids[i] = it.ProductID
		}
		locked, err := uc.lockProducts(ctx, ids)
		if err != nil {
			return err
		}

		notes := input.Reason
		if notes == "" {
			notes = "Sale cancelled"
		}
		now := uc.now()
		reference := "Cancelled: " + s.InvoiceNumber

		for _, item := range s.Items {
			p := locked[item.ProductID]
			if p == nil {
				return apperror.NotFound("Product not found: %s", item.ProductID)
			}
			if err := uc.moveStock(ctx, p, item.Quantity, model.MovementReturn, reference, s.ID, &notes, input.PerformedBy, now); err != nil {
				return err
			}
		}

		reason := input.Reason
		if reason == "" {
			reason = "No reason provided"
		}
		s.Status = model.SaleStatusCancelled
		s.Notes = s.Notes + "\n[CANCELLED] " + reason
		s.UpdatedAt = now

		if err := uc.repo.Update(ctx, s); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
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
	uc.logCommitted("Sale cancelled", s)
	uc.afterCommit(ctx, event.TypeSaleCancelled, s)
	return s, nil
}
