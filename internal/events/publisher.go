package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/config"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
)

// EventType represents the type of detail-session event.
type EventType string

const (
	EventTypeOrderConfirmed  EventType = "order.confirmed"
	EventTypeFavoriteAdded   EventType = "favorite.added"
	EventTypeFavoriteRemoved EventType = "favorite.removed"
)

// SessionEvent is an event emitted by a detail session.
type SessionEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	SessionID string          `json:"session_id"`
	FoodID    int64           `json:"food_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// EventPublisher publishes detail-session events.
type EventPublisher interface {
	PublishOrderConfirmed(ctx context.Context, sessionID string, payload *models.OrderPayload) error
	PublishFavoriteToggled(ctx context.Context, sessionID string, foodID int64, favorite bool) error
	Close() error
}

// Ensure KafkaPublisher implements EventPublisher
var _ EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher publishes session events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.EventsTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.EventsTopic,
		logger: logger,
	}
}

// PublishOrderConfirmed publishes an order confirmation event.
func (p *KafkaPublisher) PublishOrderConfirmed(ctx context.Context, sessionID string, payload *models.OrderPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := newEvent(EventTypeOrderConfirmed, sessionID, payload.ProductID, data)
	return p.publish(ctx, event)
}

// PublishFavoriteToggled publishes a favorite.added or favorite.removed
// event depending on the resulting flag.
func (p *KafkaPublisher) PublishFavoriteToggled(ctx context.Context, sessionID string, foodID int64, favorite bool) error {
	eventType := EventTypeFavoriteRemoved
	if favorite {
		eventType = EventTypeFavoriteAdded
	}

	event := newEvent(eventType, sessionID, foodID, nil)
	return p.publish(ctx, event)
}

func newEvent(eventType EventType, sessionID string, foodID int64, data []byte) *SessionEvent {
	return &SessionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		FoodID:    foodID,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, event *SessionEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.SessionID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("session_id", event.SessionID),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("Event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("session_id", event.SessionID),
	)

	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

// NopPublisher drops events. Used when events are disabled in config.
type NopPublisher struct{}

func (NopPublisher) PublishOrderConfirmed(ctx context.Context, sessionID string, payload *models.OrderPayload) error {
	return nil
}

func (NopPublisher) PublishFavoriteToggled(ctx context.Context, sessionID string, foodID int64, favorite bool) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

// MockEventPublisher is a mock implementation for testing.
type MockEventPublisher struct {
	Events []*SessionEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]*SessionEvent, 0),
	}
}

func (m *MockEventPublisher) PublishOrderConfirmed(ctx context.Context, sessionID string, payload *models.OrderPayload) error {
	m.Events = append(m.Events, &SessionEvent{
		Type:      EventTypeOrderConfirmed,
		SessionID: sessionID,
		FoodID:    payload.ProductID,
	})
	return nil
}

func (m *MockEventPublisher) PublishFavoriteToggled(ctx context.Context, sessionID string, foodID int64, favorite bool) error {
	eventType := EventTypeFavoriteRemoved
	if favorite {
		eventType = EventTypeFavoriteAdded
	}
	m.Events = append(m.Events, &SessionEvent{
		Type:      eventType,
		SessionID: sessionID,
		FoodID:    foodID,
	})
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }
