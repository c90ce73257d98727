package inventory

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

// Repository is the append-only stock ledger.
type Repository interface {
	LogMovement(ctx context.Context, log *model.InventoryLog) error
	ListLogs(ctx context.Context, filters *dto.LogFilters) ([]model.InventoryLog, int, error)
}
