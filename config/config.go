package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultCommitment     = "finalized"
	defaultTimeoutSeconds = 10
	defaultMaxConcurrent  = 10
	defaultPort           = "8080"
	defaultRateLimit      = 10
	defaultCacheTTL       = 10
	defaultMaxWallets     = 100
)

// ServerConfig holds the settings for the HTTP API surface.
type ServerConfig struct {
	Port               string `yaml:"port"`
	MongoURI           string `yaml:"mongo_uri"`
	RedisURI           string `yaml:"redis_uri"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	CacheTTLSeconds    int    `yaml:"cache_ttl_seconds"`
	MaxWalletsPerCall  int    `yaml:"max_wallets_per_call"`
}

// Config is the top-level configuration. The fetch side mirrors the shape of
// config.yaml: an RPC endpoint plus the wallet list to report on.
type Config struct {
	RPCURL                string       `yaml:"rpc_url"`
	Commitment            string       `yaml:"commitment"`
	RequestTimeoutSeconds int          `yaml:"request_timeout_seconds"`
	MaxConcurrent         int          `yaml:"max_concurrent"`
	Wallets               []string     `yaml:"wallets"`
	Server                ServerConfig `yaml:"server"`
}

// RequestTimeout returns the per-RPC-call timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns how long the API service may reuse a fetched balance.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Server.CacheTTLSeconds) * time.Second
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and validates the result. A .env file next to the process is
// honored when present.
func Load(path string) (*Config, error) {
	// Best effort; real environment variables still apply without a .env.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.RPCURL = getEnv("SOLANA_RPC_URL", cfg.RPCURL)
	cfg.Server.Port = getEnv("API_PORT", cfg.Server.Port)
	cfg.Server.MongoURI = getEnv("MONGO_URI", cfg.Server.MongoURI)
	cfg.Server.RedisURI = getEnv("REDIS_URI", cfg.Server.RedisURI)
}

func applyDefaults(cfg *Config) {
	if cfg.Commitment == "" {
		cfg.Commitment = defaultCommitment
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultMaxConcurrent
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.MongoURI == "" {
		cfg.Server.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.Server.RedisURI == "" {
		cfg.Server.RedisURI = "localhost:6379"
	}
	if cfg.Server.RateLimitPerMinute <= 0 {
		cfg.Server.RateLimitPerMinute = defaultRateLimit
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = defaultCacheTTL
	}
	if cfg.Server.MaxWalletsPerCall <= 0 {
		cfg.Server.MaxWalletsPerCall = defaultMaxWallets
	}

	cleaned := make([]string, 0, len(cfg.Wallets))
	for _, w := range cfg.Wallets {
		if w = strings.TrimSpace(w); w != "" {
			cleaned = append(cleaned, w)
		}
	}
	cfg.Wallets = cleaned
}

func validate(cfg *Config) error {
	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc_url is required (config file or SOLANA_RPC_URL)")
	}
	switch cfg.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("unknown commitment level %q", cfg.Commitment)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
