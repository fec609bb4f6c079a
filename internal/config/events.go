package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/widget-service/internal/events"
)

// EventConfig selects how completed widgets reach the lesson host.
type EventConfig struct {
	Enabled      bool
	Publisher    string // kafka or mock
	KafkaBrokers string
	ResultTopic  string
}

func (c *EventConfig) GetKafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// CreateHostBridge falls back to the logging bridge when reporting is
// disabled or the publisher is unknown.
func (c *EventConfig) CreateHostBridge(logger *slog.Logger) (events.HostBridge, error) {
	if !c.Enabled {
		logger.Info("Result reporting disabled, using log host bridge")
		return events.NewLogHostBridge(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka host bridge",
			"brokers", c.KafkaBrokers,
			"topic", c.ResultTopic)

		bridge, err := events.NewKafkaHostBridge(events.BridgeConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.ResultTopic,
			Logger:       logger,
		})
		if err != nil {
			return nil, err
		}
		return bridge, nil
	case "mock":
		logger.Info("Using mock host bridge")
		return events.NewMockHostBridge(logger), nil
	default:
		logger.Warn("Unknown host bridge publisher, falling back to log bridge", "publisher", c.Publisher)
		return events.NewLogHostBridge(logger), nil
	}
}
