package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Careful.MinScore != -0.2 {
		t.Errorf("expected MinScore=-0.2, got %f", cfg.Careful.MinScore)
	}
	if cfg.Careful.Delimiter != ";" {
		t.Errorf("expected Delimiter=';', got %q", cfg.Careful.Delimiter)
	}
	if cfg.Brute.MissLimit != 5 {
		t.Errorf("expected MissLimit=5, got %d", cfg.Brute.MissLimit)
	}
	if _, ok := cfg.Brute.Variants["yngrenydansk"]; !ok {
		t.Error("expected yngrenydansk variant")
	}
	if cfg.Service.DefaultMethod != "mixed" {
		t.Errorf("expected DefaultMethod=mixed, got %s", cfg.Service.DefaultMethod)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "dslsplit.yaml")

	content := `
careful:
  word_file: lex/lemmas.csv
  column: 2
brute:
  miss_limit: 3
service:
  request_timeout: 2s
  origins: ["https://example.org"]
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Careful.WordFile != "lex/lemmas.csv" || cfg.Careful.Column != 2 {
		t.Errorf("unexpected careful section %+v", cfg.Careful)
	}
	if cfg.Careful.Delimiter != ";" {
		t.Errorf("expected default delimiter kept, got %q", cfg.Careful.Delimiter)
	}
	if cfg.Brute.MissLimit != 3 {
		t.Errorf("expected MissLimit=3, got %d", cfg.Brute.MissLimit)
	}
	if cfg.Service.RequestTimeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %v", cfg.Service.RequestTimeout)
	}
	if len(cfg.Service.Origins) != 1 {
		t.Errorf("expected one origin, got %v", cfg.Service.Origins)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".dslsplit"), 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ".dslsplit", "config.yaml")

	content := `
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dslsplit.yaml")
	cfg := DefaultConfig()
	cfg.Careful.Profile = "custom"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Careful.Profile != "custom" {
		t.Errorf("expected Profile=custom, got %s", loaded.Careful.Profile)
	}
	if loaded.Service.RequestTimeout != cfg.Service.RequestTimeout {
		t.Errorf("expected timeout %v, got %v", cfg.Service.RequestTimeout, loaded.Service.RequestTimeout)
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := "ENABLE_SECURITY=true\nDSLSPLIT_API_KEYS=abc, def ,\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(envFile), 0644); err != nil {
		t.Fatal(err)
	}
	// Registers cleanup for the variables the .env file sets.
	t.Setenv("ENABLE_SECURITY", "")
	t.Setenv("DSLSPLIT_API_KEYS", "")
	os.Unsetenv("ENABLE_SECURITY")
	os.Unsetenv("DSLSPLIT_API_KEYS")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(dir); err != nil {
		t.Fatal(err)
	}
	if !cfg.Service.EnableSecurity {
		t.Error("expected security enabled from .env")
	}
	if len(cfg.Service.APIKeys) != 2 || cfg.Service.APIKeys[1] != "def" {
		t.Errorf("unexpected api keys %v", cfg.Service.APIKeys)
	}
}

func TestApplyEnv_ProcessWins(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ENABLE_SECURITY=true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENABLE_SECURITY", "false")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(dir); err != nil {
		t.Fatal(err)
	}
	if cfg.Service.EnableSecurity {
		t.Error("expected process environment to win over .env")
	}
}

func TestStorePath(t *testing.T) {
	cfg := DefaultConfig()
	path := cfg.StorePath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".dslsplit", "tables.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}

	cfg.Store.Path = "/var/lib/dslsplit/tables.db"
	if got := cfg.StorePath("/ignored"); got != cfg.Store.Path {
		t.Errorf("expected absolute path kept, got %s", got)
	}
}

func TestVariantNames(t *testing.T) {
	cfg := DefaultConfig()
	names := cfg.VariantNames()
	if len(names) != 2 || names[0] != "nudansk" || names[1] != "yngrenydansk" {
		t.Errorf("expected sorted variants, got %v", names)
	}
}
