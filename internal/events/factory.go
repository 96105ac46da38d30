package events

import (
	"fmt"
	"strings"

	"github.com/lingobridge/lingobridge/internal/config"
)

// New creates a Publisher based on the events config section.
// Default is the in-memory backend.
func New(cfg config.EventsConfig) (Publisher, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "memory":
		return NewMemoryPublisher(), nil

	case "nats":
		return NewNATSPublisher(cfg.URL)

	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers)

	default:
		return nil, fmt.Errorf("unsupported events backend: %s (supported: nats, kafka, memory)", cfg.Type)
	}
}
