package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.LLM.Model == "" {
		t.Fatal("expected default model")
	}
	if cfg.Garage.DueSoonMiles <= 0 || cfg.Garage.DueSoonMonths <= 0 {
		t.Fatalf("expected positive due-soon defaults, got %+v", cfg.Garage)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[llm]
enabled = true
base_url = "  http://localhost:1234/v1/chat/completions  "
model = "phi-3.5-mini"
timeout_seconds = -5

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.LLM.BaseURL != "http://localhost:1234/v1/chat/completions" {
		t.Fatalf("base_url not trimmed: %q", cfg.LLM.BaseURL)
	}
	if cfg.LLM.TimeoutSeconds <= 0 {
		t.Fatalf("expected non-positive timeout backfilled, got %d", cfg.LLM.TimeoutSeconds)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not lowercased: %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestValidateRejectsBadLLMURL(t *testing.T) {
	cfg := Default()
	cfg.LLM.Enabled = true
	cfg.LLM.BaseURL = "not a url"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "llm.base_url") {
		t.Fatalf("expected base_url error, got %v", err)
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/cc-data"
	if got := cfg.DatabasePath(); got != filepath.Join("/tmp/cc-data", "crewchief.db") {
		t.Fatalf("DatabasePath = %q", got)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	expanded, err := ExpandPath("~/x/y")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if expanded != filepath.Join(home, "x", "y") {
		t.Fatalf("expanded = %q", expanded)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}

func TestGetLLMTrims(t *testing.T) {
	cfg := Default()
	cfg.LLM.Model = " phi-3.5-mini "
	cfg.LLM.APIKey = " secret "
	llm := cfg.GetLLM()
	if llm.Model != "phi-3.5-mini" || llm.APIKey != "secret" {
		t.Fatalf("unexpected LLMConfig %+v", llm)
	}
}
