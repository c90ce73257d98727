package inventory

import (
	"context"

	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

type UseCase interface {
	AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*dto.AdjustmentResult, error)
	ListLogs(ctx context.Context, filters *dto.LogFilters) ([]model.InventoryLog, int, error)
	ListMovements(ctx context.Context, filters *dto.LogFilters) (*dto.ProductMovements, error)
}
