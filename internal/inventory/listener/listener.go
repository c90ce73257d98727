package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-pos-service/internal/inventory"
	"github.com/fekuna/omnipos-pos-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventGoodsReceived = "GoodsReceived"

// MessageReader is the part of the Kafka consumer the listener needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type InventoryListener struct {
	consumer MessageReader
	uc       inventory.UseCase
	logger   logger.ZapLogger
}

func NewInventoryListener(consumer MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting Inventory Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Inventory Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type GoodsReceivedEvent struct {
	EventID   string               `json:"event_id"`
	EventType string               `json:"event_type"`
	Payload   GoodsReceivedPayload `json:"payload"`
	Timestamp time.Time            `json:"timestamp"`
}

type GoodsReceivedPayload struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	Reference  string `json:"reference"`
	ReceivedBy string `json:"received_by"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event GoodsReceivedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventGoodsReceived {
		return
	}

	p := event.Payload
	if p.ProductID == "" || p.Quantity <= 0 {
		l.logger.Warn("Skipping GoodsReceived event with invalid payload",
			zap.String("event_id", event.EventID),
			zap.String("product_id", p.ProductID),
			zap.Int("quantity", p.Quantity),
		)
		return
	}

	performedBy := p.ReceivedBy
	if performedBy == "" {
		performedBy = "system"
	}

	l.logger.Info("Processing GoodsReceived event", zap.String("event_id", event.EventID), zap.String("product_id", p.ProductID))

	quantity := p.Quantity
	_, err := l.uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{
		ProductID:   p.ProductID,
		Quantity:    &quantity,
		Type:        model.MovementPurchase,
		Notes:       "Goods received",
		Reference:   p.Reference,
		PerformedBy: performedBy,
	})
	if err != nil {
		l.logger.Error("Failed to apply goods received",
			zap.String("event_id", event.EventID),
			zap.String("product_id", p.ProductID),
			zap.Error(err),
		)
	}
}
