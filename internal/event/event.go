package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-pos-service/pkg/broker"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TypeSaleCreated       = "sale.created"
	TypeSaleCancelled     = "sale.cancelled"
	TypeInventoryAdjusted = "inventory.adjusted"
)

// Event is the envelope written to the POS events topic.
type Event struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

func New(eventType string, payload interface{}) Event {
	return Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers events after the originating transaction committed.
// Delivery is at most once.
type Publisher interface {
	Publish(ctx context.Context, key string, evt Event)
}

type KafkaPublisher struct {
	producer *broker.KafkaProducer
	logger   logger.ZapLogger
}

func NewKafkaPublisher(producer *broker.KafkaProducer, log logger.ZapLogger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, evt Event) {
	if err := p.publish(ctx, key, evt); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_type", evt.EventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, key string, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.producer.Publish(ctx, key, data)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) {}
