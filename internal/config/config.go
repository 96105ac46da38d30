package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Pool      PoolConfig      `mapstructure:"pool"`
	Inference InferenceConfig `mapstructure:"inference"`
	Cache     CacheConfig     `mapstructure:"cache"`
	History   HistoryConfig   `mapstructure:"history"`
	Events    EventsConfig    `mapstructure:"events"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// NodeConfig represents a single inference node endpoint
type NodeConfig struct {
	URL  string `mapstructure:"url"`
	Name string `mapstructure:"name"`
}

// PoolConfig represents inference node pool configuration
type PoolConfig struct {
	Nodes          []NodeConfig  `mapstructure:"nodes"`           // Initial node endpoints
	ProbeTimeout   time.Duration `mapstructure:"probe_timeout"`   // Per-node health probe timeout (default: 2s)
	HealthInterval time.Duration `mapstructure:"health_interval"` // Background refresh interval, 0 disables the loop
}

// InferenceConfig represents inference call configuration
type InferenceConfig struct {
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`     // Blocking call timeout (default: 120s)
	MaxTokens         int           `mapstructure:"max_tokens"`          // Token budget for blocking calls
	StreamMaxTokens   int           `mapstructure:"stream_max_tokens"`   // Token budget for streaming calls
	DocumentMaxTokens int           `mapstructure:"document_max_tokens"` // Token budget in document mode
	Temperature       float64       `mapstructure:"temperature"`
}

// CacheConfig represents translation cache configuration
type CacheConfig struct {
	MaxSize int           `mapstructure:"max_size"` // Maximum number of cached translations
	TTL     time.Duration `mapstructure:"ttl"`      // Entry time-to-live
}

// HistoryConfig represents translation history store configuration
type HistoryConfig struct {
	Type        string `mapstructure:"type"`        // Store type: memory (default), redis
	URL         string `mapstructure:"url"`         // Redis URL (e.g., redis://localhost:6379)
	Password    string `mapstructure:"password"`    // Optional authentication
	RedisDB     int    `mapstructure:"redis_db"`    // Redis database number (default: 0)
	RedisKey    string `mapstructure:"redis_key"`   // Redis list key (default: "lingobridge:history")
	Limit       int    `mapstructure:"limit"`       // Maximum retained records (default: 1000)
	Compression bool   `mapstructure:"compression"` // Snappy-compress redis records
}

// EventsConfig represents completion event feed configuration
type EventsConfig struct {
	Type         string   `mapstructure:"type"`          // Publisher type: memory (default), nats, kafka
	URL          string   `mapstructure:"url"`           // NATS server URL
	KafkaBrokers []string `mapstructure:"kafka_brokers"` // Kafka broker addresses
	Subject      string   `mapstructure:"subject"`       // Subject/topic for completion events
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Pool.Validate(); err != nil {
		return fmt.Errorf("pool config: %w", err)
	}

	if err := c.Inference.Validate(); err != nil {
		return fmt.Errorf("inference config: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache config: %w", err)
	}

	if err := c.History.Validate(); err != nil {
		return fmt.Errorf("history config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	return nil
}

// Validate validates pool configuration
func (c *PoolConfig) Validate() error {
	if len(c.Nodes) == 0 {
		return fmt.Errorf("pool.nodes is required")
	}

	for i, n := range c.Nodes {
		if n.URL == "" {
			return fmt.Errorf("pool.nodes[%d].url is required", i)
		}
	}

	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("pool.probe_timeout must be positive")
	}

	return nil
}

// Validate validates inference configuration
func (c *InferenceConfig) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("inference.request_timeout must be positive")
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("inference.max_tokens must be positive")
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("inference.temperature must be between 0 and 2")
	}

	return nil
}

// Validate validates cache configuration
func (c *CacheConfig) Validate() error {
	if c.MaxSize <= 0 {
		return fmt.Errorf("cache.max_size must be positive")
	}

	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}

	return nil
}

// Validate validates history configuration
func (c *HistoryConfig) Validate() error {
	switch c.Type {
	case "", "memory", "redis":
	default:
		return fmt.Errorf("history.type must be 'memory' or 'redis'")
	}

	if c.Type == "redis" && c.URL == "" {
		return fmt.Errorf("history.url is required for redis history")
	}

	if c.Limit <= 0 {
		return fmt.Errorf("history.limit must be positive")
	}

	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
