package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.ServiceName != "leagueday-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.JoinRequestTTL != 168*time.Hour {
		t.Fatalf("unexpected JoinRequestTTL: %s", cfg.JoinRequestTTL)
	}
	if cfg.SweepInterval != 10*time.Minute {
		t.Fatalf("unexpected SweepInterval: %s", cfg.SweepInterval)
	}
	if cfg.SweepWorkers != 4 {
		t.Fatalf("unexpected SweepWorkers: %d", cfg.SweepWorkers)
	}
	if !cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=true by default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "dynamodb")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORAGE_DRIVER")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_WebhookRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("WEBHOOK_ENABLED", "true")
	t.Setenv("WEBHOOK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when WEBHOOK_ENABLED=true without WEBHOOK_ENDPOINT")
	}
}

func TestLoad_WebhookConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("WEBHOOK_ENABLED", "true")
	t.Setenv("WEBHOOK_ENDPOINT", "https://hooks.example.com/leagueday")
	t.Setenv("WEBHOOK_TOKEN", "token-123")
	t.Setenv("WEBHOOK_TIMEOUT", "4s")
	t.Setenv("WEBHOOK_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("WEBHOOK_CIRCUIT_COOLDOWN", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.WebhookEnabled {
		t.Fatalf("expected WebhookEnabled=true")
	}
	if cfg.WebhookEndpoint != "https://hooks.example.com/leagueday" {
		t.Fatalf("unexpected WebhookEndpoint: %q", cfg.WebhookEndpoint)
	}
	if cfg.WebhookToken != "token-123" {
		t.Fatalf("unexpected WebhookToken")
	}
	if cfg.WebhookTimeout != 4*time.Second {
		t.Fatalf("unexpected WebhookTimeout: %s", cfg.WebhookTimeout)
	}
	if cfg.WebhookCircuit.FailureThreshold != 3 {
		t.Fatalf("unexpected FailureThreshold: %d", cfg.WebhookCircuit.FailureThreshold)
	}
	if cfg.WebhookCircuit.Cooldown != 30*time.Second {
		t.Fatalf("unexpected Cooldown: %s", cfg.WebhookCircuit.Cooldown)
	}
}

func TestLoad_SweepIntervalZeroDisablesSweeper(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SWEEP_INTERVAL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SweepInterval != 0 {
		t.Fatalf("unexpected SweepInterval: %s", cfg.SweepInterval)
	}
}

func TestLoad_JoinRequestTTLValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JOIN_REQUEST_TTL", "-1h")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative JOIN_REQUEST_TTL")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "debug", want: "debug"},
		{in: "WARN", want: "warn"},
		{in: "warning", want: "warn"},
		{in: "error", want: "error"},
		{in: "", want: "info"},
		{in: "nonsense", want: "info"},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in).String(); got != tt.want {
			t.Fatalf("parseLogLevel(%q)=%s want=%s", tt.in, got, tt.want)
		}
	}
}
