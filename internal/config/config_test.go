package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ClinicaVital/CV-Portal/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadYAML verifies YAML values land in the right fields and unset backend
// groups fall back to the general base URL.
func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
port: "8080"
backend:
  base_url: "http://clinic.example/api"
  citas_base_url: "http://citas.example/api"
allowed_origins:
  - "http://localhost:5173"
login_rate_limit: 2
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.Backend.CitasBaseURL != "http://citas.example/api" {
		t.Errorf("citas url: got %q", cfg.Backend.CitasBaseURL)
	}
	if cfg.Backend.PagosBaseURL != "http://clinic.example/api" {
		t.Errorf("pagos url should fall back to base, got %q", cfg.Backend.PagosBaseURL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("origins: got %v", cfg.AllowedOrigins)
	}
	if cfg.LoginRateLimit != 2 {
		t.Errorf("rate limit: got %v", cfg.LoginRateLimit)
	}
}

// TestLoadEnvOverrides verifies environment variables win over the file.
func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
port: "8080"
backend:
  base_url: "http://file.example/api"
`)

	t.Setenv("PORT", "9090")
	t.Setenv("CLINIC_API_BASE_URL", "http://env.example/api")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.Backend.BaseURL != "http://env.example/api" {
		t.Errorf("base url: got %q", cfg.Backend.BaseURL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.example" {
		t.Errorf("origins: got %v", cfg.AllowedOrigins)
	}
}

// TestLoadMissingBackendURL verifies the one required setting is enforced.
func TestLoadMissingBackendURL(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, config.ErrMissingBackendURL) {
		t.Errorf("expected ErrMissingBackendURL, got %v", err)
	}
}

// TestLoadDefaults verifies defaults when the file has only the required URL.
func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: "http://clinic.example/api"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5050" {
		t.Errorf("default port: got %q", cfg.Port)
	}
	if cfg.LoginRateLimit != 1 {
		t.Errorf("default rate limit: got %v", cfg.LoginRateLimit)
	}
}
