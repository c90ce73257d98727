package listener

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	inputs []*dto.AdjustInventoryInput
}

func (s *stubUseCase) AdjustInventory(_ context.Context, input *dto.AdjustInventoryInput) (*dto.AdjustmentResult, error) {
	s.inputs = append(s.inputs, input)
	return &dto.AdjustmentResult{}, nil
}

func (s *stubUseCase) ListLogs(context.Context, *dto.LogFilters) ([]model.InventoryLog, int, error) {
	return nil, 0, nil
}

func (s *stubUseCase) ListMovements(context.Context, *dto.LogFilters) (*dto.ProductMovements, error) {
	return nil, nil
}

// sliceReader serves queued messages, then cancels the listener.
type sliceReader struct {
	msgs   []kafka.Message
	cancel context.CancelFunc
}

func (r *sliceReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		return kafka.Message{}, errors.New("closed")
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func TestListenerAppliesGoodsReceived(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &sliceReader{cancel: cancel, msgs: []kafka.Message{
		{Value: []byte(`{"event_id":"e1","event_type":"GoodsReceived","payload":{"product_id":"p1","quantity":12,"reference":"PO-7","received_by":"u1"}}`)},
		{Value: []byte(`{"event_id":"e2","event_type":"OrderCreated","payload":{}}`)},
		{Value: []byte(`not json`)},
		{Value: []byte(`{"event_id":"e3","event_type":"GoodsReceived","payload":{"product_id":"p1","quantity":0}}`)},
	}}
	uc := &stubUseCase{}

	NewInventoryListener(reader, uc, logger.NewNop()).Start(ctx)

	require.Len(t, uc.inputs, 1)
	in := uc.inputs[0]
	assert.Equal(t, "p1", in.ProductID)
	assert.Equal(t, 12, *in.Quantity)
	assert.Equal(t, model.MovementPurchase, in.Type)
	assert.Equal(t, "PO-7", in.Reference)
	assert.Equal(t, "u1", in.PerformedBy)
}
