package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected default shutdown timeout 30s, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("expected memory driver, got %q", cfg.Database.Driver)
	}
	if !cfg.Bridge.ReplayGuardDigest {
		t.Error("expected digest replay guard enabled by default")
	}
	if cfg.Swap.HashFunction != "sha256" {
		t.Errorf("expected sha256 hash function, got %q", cfg.Swap.HashFunction)
	}
	if cfg.Swap.CustodyAccount == "" {
		t.Error("expected default custody account")
	}
}

func TestParse_OverridesAndEnvExpansion(t *testing.T) {
	t.Setenv("BRIDGE_DB_PASSWORD", "s3cret")

	raw := `
server:
  port: 9000
  request_timeout: 5s
database:
  driver: postgres
  host: db.internal
  user: bridge
  password: ${BRIDGE_DB_PASSWORD}
logging:
  level: debug
  format: console
bridge:
  replay_guard_digest: false
swap:
  hash_function: keccak256
  genesis_balances:
    alice: "1000"
events:
  replay_on_start: true
`
	cfg, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("expected request timeout 5s, got %s", cfg.Server.RequestTimeout)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("expected env-expanded password, got %q", cfg.Database.Password)
	}
	if cfg.Database.Database != "bridge_swap" {
		t.Errorf("expected default database name to survive override, got %q", cfg.Database.Database)
	}
	if cfg.Bridge.ReplayGuardDigest {
		t.Error("expected digest replay guard disabled")
	}
	if cfg.Swap.HashFunction != "keccak256" {
		t.Errorf("expected keccak256, got %q", cfg.Swap.HashFunction)
	}

	if cfg.Swap.GenesisBalances["alice"] != "1000" {
		t.Errorf("expected genesis balance for alice, got %v", cfg.Swap.GenesisBalances)
	}
	if !cfg.Events.ReplayOnStart {
		t.Error("expected replay on start")
	}

	want := "host=db.internal port=5432 user=bridge password=s3cret dbname=bridge_swap sslmode=disable"
	if got := cfg.Database.GetConnectionString(); got != want {
		t.Errorf("connection string mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown driver", "database:\n  driver: mysql\n"},
		{"bad log level", "logging:\n  level: verbose\n"},
		{"auth without secret", "auth:\n  enabled: true\n"},
		{"bad hash function", "swap:\n  hash_function: md5\n"},
		{"unknown field", "bridge:\n  nonsense: 1\n"},
		{"port out of range", "server:\n  port: 70000\n"},
		{"non-numeric genesis balance", "swap:\n  genesis_balances:\n    alice: lots\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.raw)); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8181\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("expected port 8181, got %d", cfg.Server.Port)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(LoggingConfig{Level: "info", Format: "json"}, "bridged"); err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	if _, err := NewLogger(LoggingConfig{Level: "loud", Format: "json"}, ""); err == nil {
		t.Fatal("expected invalid level error")
	}
}
