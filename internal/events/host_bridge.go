package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HostBridge delivers widget results to the lesson host.
type HostBridge interface {
	Report(ctx context.Context, event *WidgetEvent) error
	Close() error
}

// KafkaHostBridge publishes widget events to a Kafka topic through Watermill
type KafkaHostBridge struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

type BridgeConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

func NewKafkaHostBridge(config BridgeConfig) (*KafkaHostBridge, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisherConfig := kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return newPublisherBridge(publisher, config.TopicName, config.Logger), nil
}

func newPublisherBridge(publisher message.Publisher, topic string, logger *slog.Logger) *KafkaHostBridge {
	return &KafkaHostBridge{
		publisher: publisher,
		logger:    logger,
		topicName: topic,
	}
}

func (b *KafkaHostBridge) Report(ctx context.Context, event *WidgetEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal widget event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	// partition by learner so a lesson's events stay ordered
	msg.Metadata.Set("partition_key", event.Data.UserID)

	if err := b.publisher.Publish(b.topicName, msg); err != nil {
		b.logger.Error("Failed to publish widget event",
			"event_id", event.ID,
			"widget_id", event.Data.WidgetID,
			"error", err)
		return fmt.Errorf("failed to publish widget event: %w", err)
	}

	b.logger.Info("Published widget event",
		"event_id", event.ID,
		"widget_id", event.Data.WidgetID,
		"widget_type", event.Data.WidgetType,
		"topic", b.topicName)

	return nil
}

func (b *KafkaHostBridge) Close() error {
	return b.publisher.Close()
}

// LogHostBridge only logs reported events. It is used when result
// reporting is disabled.
type LogHostBridge struct {
	logger *slog.Logger
}

func NewLogHostBridge(logger *slog.Logger) *LogHostBridge {
	return &LogHostBridge{logger: logger}
}

func (b *LogHostBridge) Report(ctx context.Context, event *WidgetEvent) error {
	b.logger.InfoContext(ctx, "Widget result not reported, host bridge disabled",
		"event_id", event.ID,
		"widget_id", event.Data.WidgetID,
		"user_id", event.Data.UserID)
	return nil
}

func (b *LogHostBridge) Close() error {
	return nil
}

// MockHostBridge keeps reported events in memory
type MockHostBridge struct {
	mu     sync.Mutex
	events []WidgetEvent
	Err    error
	Logger *slog.Logger
}

func NewMockHostBridge(logger *slog.Logger) *MockHostBridge {
	return &MockHostBridge{Logger: logger}
}

func (m *MockHostBridge) Report(ctx context.Context, event *WidgetEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.events = append(m.events, *event)
	m.Logger.Info("Mock: reported widget event",
		"event_id", event.ID,
		"widget_id", event.Data.WidgetID)
	return nil
}

func (m *MockHostBridge) Close() error {
	return nil
}

func (m *MockHostBridge) Events() []WidgetEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]WidgetEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockHostBridge) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
