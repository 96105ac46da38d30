package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"

	"github.com/lingobridge/lingobridge/internal/config"
	"github.com/lingobridge/lingobridge/internal/logging"
)

// RedisStore persists records in a capped Redis list, newest first.
// Records are JSON, optionally snappy-compressed.
type RedisStore struct {
	client   *redis.Client
	key      string
	limit    int
	compress bool
	logger   *logging.Logger
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(cfg config.HistoryConfig, logger *logging.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = logging.Global()
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		// Fallback to simple options
		opts = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	key := cfg.RedisKey
	if key == "" {
		key = "lingobridge:history"
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 1000
	}

	return &RedisStore{
		client:   client,
		key:      key,
		limit:    limit,
		compress: cfg.Compression,
		logger:   logger,
	}, nil
}

func (r *RedisStore) encode(rec Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if r.compress {
		data = snappy.Encode(nil, data)
	}
	return data, nil
}

func (r *RedisStore) decode(raw []byte) (Record, error) {
	data := raw
	if r.compress {
		// Tolerate records written before compression was enabled
		if decoded, err := snappy.Decode(nil, raw); err == nil {
			data = decoded
		}
	}

	var rec Record
	err := json.Unmarshal(data, &rec)
	return rec, err
}

// Add pushes the record and trims the list to the store limit
func (r *RedisStore) Add(ctx context.Context, rec Record) error {
	data, err := r.encode(rec)
	if err != nil {
		return fmt.Errorf("encoding history record: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, data)
	pipe.LTrim(ctx, r.key, 0, int64(r.limit)-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing history record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. Undecodable entries
// are logged and skipped.
func (r *RedisStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > r.limit {
		limit = r.limit
	}

	raw, err := r.client.LRange(ctx, r.key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		rec, err := r.decode([]byte(item))
		if err != nil {
			r.logger.Warn("Skipping undecodable history record", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Clear deletes the whole list
func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

// Count returns the list length
func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := r.client.LLen(ctx, r.key).Result()
	return int(n), err
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
