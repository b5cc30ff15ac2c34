package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Auth       AuthConfig       `yaml:"auth"`
	Bridge     BridgeConfig     `yaml:"bridge"`
	Swap       SwapConfig       `yaml:"swap"`
	Events     EventsConfig     `yaml:"events"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host               string        `yaml:"host" default:"0.0.0.0"`
	Port               int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout        time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout       time.Duration `yaml:"write_timeout" default:"15s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout" default:"60s"`
	RequestTimeout     time.Duration `yaml:"request_timeout" default:"60s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" default:"30s"`
	MaxRequestBodyLen  int64         `yaml:"max_request_body_len" default:"1048576" validate:"min=1"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
}

// DatabaseConfig contains database connection settings.
// Driver "memory" keeps the ledger in process memory; "postgres" uses the remaining fields.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" default:"memory" validate:"oneof=memory postgres"`
	Host     string `yaml:"host" default:"localhost" validate:"required_if=Driver postgres"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"bridge_swap" validate:"required_if=Driver postgres"`
	SSLMode  string `yaml:"ssl_mode" default:"disable"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled     bool   `yaml:"enabled" default:"true"`
	MetricsPath string `yaml:"metrics_path" default:"/metrics"`
}

// AuthConfig controls how the caller of swap operations is identified.
// With auth disabled the caller is taken from the X-Caller header.
type AuthConfig struct {
	Enabled   bool   `yaml:"enabled"`
	JWTSecret string `yaml:"jwt_secret" validate:"required_if=Enabled true"` //nolint:gosec // config field name
	Issuer    string `yaml:"issuer"`
}

// BridgeConfig contains bridge ledger settings
type BridgeConfig struct {
	// ReplayGuardDigest additionally rejects a signed message that was already minted under another tx id.
	ReplayGuardDigest bool `yaml:"replay_guard_digest" default:"true"`
}

// SwapConfig contains atomic swap engine settings
type SwapConfig struct {
	CustodyAccount string `yaml:"custody_account" default:"htlc-custody" validate:"required"`
	HashFunction   string `yaml:"hash_function" default:"sha256" validate:"oneof=sha256 keccak256"`

	// GenesisBalances are credited once, the first time the ledger is opened.
	// Amounts are base-10 integers.
	GenesisBalances map[string]string `yaml:"genesis_balances" validate:"dive,keys,required,endkeys,numeric"`
}

// EventsConfig controls delivery of the event outbox
type EventsConfig struct {
	// ReplayOnStart republishes stored events with a sequence number above ReplayAfter at startup.
	ReplayOnStart bool   `yaml:"replay_on_start"`
	ReplayAfter   uint64 `yaml:"replay_after"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load loads configuration from a YAML file. ${VAR} references are expanded from the environment.
func Load(configPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes, defaults and validates a YAML configuration document.
func Parse(raw []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(raw))

	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewBufferString(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
