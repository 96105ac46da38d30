// Package cache provides the in-memory translation result cache. Entries
// are content-addressed by the (text, source language, target language)
// triple, expire lazily on read, and are evicted oldest-first on write
// when the store is full. No background sweeper is needed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/lingobridge/lingobridge/internal/logging"
)

const (
	// DefaultMaxSize is the default entry capacity
	DefaultMaxSize = 1000

	// DefaultTTL is the default entry time-to-live
	DefaultTTL = 24 * time.Hour
)

// Entry represents a cached translation
type Entry struct {
	Key         string
	Translation string
	SourceLang  string // Display name, e.g. "English"
	TargetLang  string // Display name, e.g. "Spanish"
	Model       string
	CreatedAt   time.Time
}

// Store is a fixed-capacity TTL cache for translation results
type Store struct {
	mu        sync.Mutex
	entries   map[string]*Entry
	maxSize   int
	ttl       time.Duration
	logger    *logging.Logger
	hits      int64
	misses    int64
	evictions int64

	// now allows tests to control time
	now func() time.Time
}

// New creates a translation cache with the given capacity and TTL.
// Non-positive values fall back to the defaults.
func New(maxSize int, ttl time.Duration, logger *logging.Logger) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logging.Global()
	}

	return &Store{
		entries: make(map[string]*Entry),
		maxSize: maxSize,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Key computes the deterministic cache key for a translation triple.
// The triple is hashed raw, so language name casing is significant.
func Key(text, sourceLang, targetLang string) string {
	h := sha256.Sum256([]byte(text + ":" + sourceLang + ":" + targetLang))
	return hex.EncodeToString(h[:])
}

// Get returns the cached entry for the triple if present and fresh.
// Expired entries are dropped on the way out.
func (s *Store) Get(text, sourceLang, targetLang string) (*Entry, bool) {
	key := Key(text, sourceLang, targetLang)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		s.misses++
		s.logger.Debug("Cache miss", "key", shortKey(key))
		return nil, false
	}

	if s.now().Sub(entry.CreatedAt) > s.ttl {
		delete(s.entries, key)
		s.misses++
		s.logger.Debug("Cache entry expired", "key", shortKey(key))
		return nil, false
	}

	s.hits++
	s.logger.Debug("Cache hit", "key", shortKey(key))
	return entry, true
}

// Set stores a translation for the triple, evicting the oldest tenth of
// the store first if it is at capacity. It never fails.
func (s *Store) Set(text, sourceLang, targetLang, translation, model string) {
	key := Key(text, sourceLang, targetLang)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.maxSize {
		s.evictOldestLocked()
	}

	s.entries[key] = &Entry{
		Key:         key,
		Translation: translation,
		SourceLang:  sourceLang,
		TargetLang:  targetLang,
		Model:       model,
		CreatedAt:   s.now(),
	}

	s.logger.Debug("Cached translation", "key", shortKey(key), "model", model)
}

// evictOldestLocked removes the oldest 10% of entries by creation time.
// Ties are broken by key so eviction order is deterministic.
func (s *Store) evictOldestLocked() {
	count := (s.maxSize + 9) / 10
	if count < 1 {
		count = 1
	}

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		ei, ej := s.entries[keys[i]], s.entries[keys[j]]
		if !ei.CreatedAt.Equal(ej.CreatedAt) {
			return ei.CreatedAt.Before(ej.CreatedAt)
		}
		return keys[i] < keys[j]
	})

	if count > len(keys) {
		count = len(keys)
	}

	for _, k := range keys[:count] {
		delete(s.entries, k)
	}

	s.evictions += int64(count)
	s.logger.Info("Evicted cache entries", "count", count, "remaining", len(s.entries))
}

// Len returns the number of entries currently held, including any that
// have expired but not yet been dropped.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Clear removes all entries
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*Entry)
}

// Stats returns cache statistics
func (s *Store) Stats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	now := s.now()
	for _, entry := range s.entries {
		if now.Sub(entry.CreatedAt) > s.ttl {
			expired++
		}
	}

	return map[string]interface{}{
		"total_entries":   len(s.entries),
		"expired_entries": expired,
		"active_entries":  len(s.entries) - expired,
		"max_size":        s.maxSize,
		"ttl_seconds":     s.ttl.Seconds(),
		"hits":            s.hits,
		"misses":          s.misses,
		"evictions":       s.evictions,
	}
}

// shortKey truncates a key for log output
func shortKey(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[:8]
}
