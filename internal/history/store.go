// Package history persists completed translations for context lookups,
// the history API, and usage stats.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/lingobridge/lingobridge/internal/config"
	"github.com/lingobridge/lingobridge/internal/logging"
)

// Record is one stored translation
type Record struct {
	ID              string    `json:"id"`
	SourceText      string    `json:"source_text"`
	TranslatedText  string    `json:"translated_text"`
	SourceLang      string    `json:"source_lang"`
	TargetLang      string    `json:"target_lang"`
	InferenceTimeMS float64   `json:"inference_time_ms"`
	Model           string    `json:"model"`
	Timestamp       time.Time `json:"timestamp"`
}

// Store persists translation records newest-first
type Store interface {
	// Add appends a record, evicting the oldest beyond the store limit
	Add(ctx context.Context, rec Record) error

	// Recent returns up to limit records, newest first
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Clear removes all records
	Clear(ctx context.Context) error

	// Count returns the number of stored records
	Count(ctx context.Context) (int, error)

	// Close releases backing resources
	Close() error
}

// New creates a store from the history config section
func New(cfg config.HistoryConfig, logger *logging.Logger) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryStore(cfg.Limit), nil
	case "redis":
		return NewRedisStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown history store type: %s", cfg.Type)
	}
}
