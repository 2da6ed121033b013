package config

import (
	"strings"
	"testing"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := envLookup
	envLookup = func(key string) string { return env[key] }
	t.Cleanup(func() { envLookup = orig })
}

func TestLoadDefaults(t *testing.T) {
	withEnv(t, nil)
	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.DataBackend != BackendMemory {
		t.Errorf("backend = %q", cfg.DataBackend)
	}
	if cfg.SlotKey != "noteup_data_v1" {
		t.Errorf("slot key = %q", cfg.SlotKey)
	}
	if cfg.PageSize != 20 {
		t.Errorf("page size = %d", cfg.PageSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	withEnv(t, map[string]string{
		"PORT":         "9000",
		"DATA_BACKEND": "sqlite",
		"PAGE_SIZE":    "50",
		"CURRENCY":     "EUR",
	})
	cfg := Load()

	if cfg.Port != "9000" || cfg.DataBackend != BackendSQLite || cfg.PageSize != 50 || cfg.Currency != "EUR" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Port:        "not-a-port",
		DataBackend: "redis",
		SlotKey:     "",
		PageSize:    0,
		Currency:    "RUPIAH",
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	msg := err.Error()
	for _, want := range []string{"port", "backend", "slot key", "page size", "currency"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}
