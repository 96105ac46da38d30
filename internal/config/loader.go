package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")                // Current directory
		v.AddConfigPath("./configs")        // Project configs directory
		v.AddConfigPath("/etc/lingobridge") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("LINGOBRIDGE")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)

	// Pool defaults
	v.SetDefault("pool.nodes", []map[string]interface{}{
		{"url": "http://localhost:3001", "name": "Node 1"},
	})
	v.SetDefault("pool.probe_timeout", "2s")
	v.SetDefault("pool.health_interval", "30s")

	// Inference defaults
	v.SetDefault("inference.request_timeout", "120s")
	v.SetDefault("inference.max_tokens", 512)
	v.SetDefault("inference.stream_max_tokens", 2048)
	v.SetDefault("inference.document_max_tokens", 4096)
	v.SetDefault("inference.temperature", 0.2)

	// Cache defaults
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")

	// History defaults
	v.SetDefault("history.type", "memory")
	v.SetDefault("history.redis_key", "lingobridge:history")
	v.SetDefault("history.limit", 1000)
	v.SetDefault("history.compression", true)

	// Events defaults
	v.SetDefault("events.type", "memory")
	v.SetDefault("events.url", "nats://localhost:4222")
	v.SetDefault("events.subject", "lingobridge.translation.completed")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 8080,
		},
		Pool: PoolConfig{
			Nodes: []NodeConfig{
				{URL: "http://localhost:3001", Name: "Node 1"},
			},
			ProbeTimeout:   2 * time.Second,
			HealthInterval: 30 * time.Second,
		},
		Inference: InferenceConfig{
			RequestTimeout:    120 * time.Second,
			MaxTokens:         512,
			StreamMaxTokens:   2048,
			DocumentMaxTokens: 4096,
			Temperature:       0.2,
		},
		Cache: CacheConfig{
			MaxSize: 1000,
			TTL:     24 * time.Hour,
		},
		History: HistoryConfig{
			Type:        "memory",
			RedisKey:    "lingobridge:history",
			Limit:       1000,
			Compression: true,
		},
		Events: EventsConfig{
			Type:    "memory",
			URL:     "nats://localhost:4222",
			Subject: "lingobridge.translation.completed",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
