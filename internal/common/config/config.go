package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NLU       NLUConfig       `mapstructure:"nlu"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NLUConfig configures the fallback natural-language classifier. An empty
// APIKey disables the classifier; unmatched messages then resolve to UNKNOWN
// with a clarification prompt instead of calling out.
type NLUConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

func (n NLUConfig) Enabled() bool {
	return n.APIKey != ""
}

func (n NLUConfig) RequestTimeout() time.Duration {
	if n.Timeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(n.Timeout) * time.Millisecond
}

// AssistantConfig holds behavioral knobs for the assistant core.
type AssistantConfig struct {
	// PreviewLimit caps how many per-item changes a price-update preview
	// lists. Default 10.
	PreviewLimit int `mapstructure:"preview_limit"`
	// PreviewCapHard controls what the cap means. When false the cap is a
	// display truncation: the change list still carries every matched item
	// so a confirm applies all of them. When true the change list itself is
	// cut at PreviewLimit items.
	PreviewCapHard bool `mapstructure:"preview_cap_hard"`
	// CurrencySymbol is used in response messages.
	CurrencySymbol string `mapstructure:"currency_symbol"`
	// CategoryCacheTTL is how long category names are cached, in seconds.
	CategoryCacheTTL int `mapstructure:"category_cache_ttl"`
}

func (a AssistantConfig) CacheTTL() time.Duration {
	if a.CategoryCacheTTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(a.CategoryCacheTTL) * time.Second
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
