package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
environment: test
backend:
  type: clickhouse
github:
  token: unit-test-token
  queries:
    - "created:>2024-01-01 stars:>100"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "test" {
		t.Fatalf("environment = %q", cfg.Environment)
	}
	if cfg.Backend.Type != "clickhouse" {
		t.Fatalf("backend = %q", cfg.Backend.Type)
	}
	if len(cfg.GitHub.Queries) != 1 {
		t.Fatalf("queries = %v", cfg.GitHub.Queries)
	}
}

func TestLoadEmptyTokenRunsUnauthenticated(t *testing.T) {
	body := `
environment: test
backend:
  type: kafka
github:
  queries: ["x"]
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("empty token must be allowed: %v", err)
	}
	if cfg.GitHub.Token != "" {
		t.Fatalf("token = %q, want empty", cfg.GitHub.Token)
	}
}

func TestLoadBadBackend(t *testing.T) {
	body := `
environment: test
backend:
  type: postgres
github:
  token: x
  queries: ["x"]
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("BACKEND", "kafka")

	cfg, err := LoadWithEnv(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if cfg.GitHub.Token != "env-token" {
		t.Fatalf("token = %q, want env override", cfg.GitHub.Token)
	}
	if cfg.Backend.Type != "kafka" {
		t.Fatalf("backend = %q, want kafka", cfg.Backend.Type)
	}
}

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.GitHub.BaseURL != "https://api.github.com" {
		t.Fatalf("base url = %q", c.GitHub.BaseURL)
	}
	if len(c.GitHub.Queries) != 3 {
		t.Fatalf("default queries = %v", c.GitHub.Queries)
	}
	if c.Scan.MaxCandidates != 50 {
		t.Fatalf("max candidates = %d", c.Scan.MaxCandidates)
	}
}
