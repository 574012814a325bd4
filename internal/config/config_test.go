package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LLM_PROVIDER", "LLM_API_KEY", "LLM_BASE_URL", "LLM_MODEL", "LLM_TEMPERATURE",
		"LLM_TOP_P", "LLM_MAX_TOKENS", "LLM_TIMEOUT", "ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY",
		"STORE_DRIVER", "STORE_PATH", "REDIS_DB", "HISTORY_LIMIT", "LOG_LEVEL", "LOG_FORMAT",
		"LOG_DEVELOPMENT", "PALETTE_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.AI.Provider != ProviderOpenAI {
		t.Fatalf("unexpected provider %q", cfg.AI.Provider)
	}
	if cfg.AI.BaseURL != defaultCompletionURL || cfg.AI.Model != defaultModel {
		t.Fatalf("unexpected completion defaults: %+v", cfg.AI)
	}
	if *cfg.AI.Temperature != 0.7 || *cfg.AI.TopP != 1 || *cfg.AI.MaxTokens != 150 {
		t.Fatalf("unexpected sampling defaults: %v %v %v", *cfg.AI.Temperature, *cfg.AI.TopP, *cfg.AI.MaxTokens)
	}
	if cfg.AI.Timeout != 0 {
		t.Fatalf("expected no timeout by default, got %s", cfg.AI.Timeout)
	}
	if cfg.AI.Enabled() {
		t.Fatal("AI must stay disabled without an API key")
	}
	if cfg.Storage.Driver != "file" || cfg.Storage.Path != ".moodmate" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Journal.HistoryLimit != 10 {
		t.Fatalf("unexpected history limit %d", cfg.Journal.HistoryLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("HISTORY_LIMIT", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if !cfg.AI.Enabled() {
		t.Fatal("expected AI to be enabled with an API key")
	}
	if *cfg.AI.Temperature != 0.2 {
		t.Fatalf("unexpected temperature %v", *cfg.AI.Temperature)
	}
	if cfg.AI.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.AI.Timeout)
	}
	if cfg.Storage.Path != ".moodmate/moodmate.db" {
		t.Fatalf("unexpected sqlite path %q", cfg.Storage.Path)
	}
	if cfg.Journal.HistoryLimit != 1 {
		t.Fatalf("history limit should clamp to 1, got %d", cfg.Journal.HistoryLimit)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"LLM_PROVIDER":    "bard",
		"LLM_TEMPERATURE": "warm",
		"STORE_DRIVER":    "floppy",
		"LLM_TIMEOUT":     "soon",
		"PORT":            "80 80",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestArkEnabled(t *testing.T) {
	cfg := AIConfig{Provider: ProviderArk, Model: "ep-123", ArkAccessKey: "ak", ArkSecretKey: "sk"}
	if !cfg.Enabled() {
		t.Fatal("expected ark provider to be enabled with AK/SK")
	}
	cfg.ArkSecretKey = ""
	if cfg.Enabled() {
		t.Fatal("expected ark provider to be disabled without SK")
	}
}
