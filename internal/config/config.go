package config

import (
	"errors"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// BackendConfig holds the base URLs of the clinic backend. The backend exposes
// its modules on more than one host/port, so each group gets its own base URL;
// any group left empty falls back to BaseURL.
type BackendConfig struct {
	BaseURL             string `yaml:"base_url"`
	AdminBaseURL        string `yaml:"admin_base_url"`
	CitasBaseURL        string `yaml:"citas_base_url"`
	PagosBaseURL        string `yaml:"pagos_base_url"`
	TratamientosBaseURL string `yaml:"tratamientos_base_url"`
}

type Config struct {
	Port        string        `yaml:"port"`
	DatabaseURL string        `yaml:"database_url"`
	Backend     BackendConfig `yaml:"backend"`

	// CORS allow-list for the browser front end.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Login attempts per second allowed per client IP (burst is 3x).
	LoginRateLimit float64 `yaml:"login_rate_limit"`
}

var ErrMissingBackendURL = errors.New("config: backend base_url is required")

// Load reads the YAML config file when present and then applies environment
// overrides, so a bare environment-only deployment still works.
func Load(path string) (Config, error) {
	cfg := Config{
		Port:           "5050",
		LoginRateLimit: 1,
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, err
			}
		} else if !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if cfg.Backend.BaseURL == "" {
		return Config{}, ErrMissingBackendURL
	}

	// Unset groups share the general base URL.
	if cfg.Backend.AdminBaseURL == "" {
		cfg.Backend.AdminBaseURL = cfg.Backend.BaseURL
	}
	if cfg.Backend.CitasBaseURL == "" {
		cfg.Backend.CitasBaseURL = cfg.Backend.BaseURL
	}
	if cfg.Backend.PagosBaseURL == "" {
		cfg.Backend.PagosBaseURL = cfg.Backend.BaseURL
	}
	if cfg.Backend.TratamientosBaseURL == "" {
		cfg.Backend.TratamientosBaseURL = cfg.Backend.BaseURL
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("CLINIC_API_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("CLINIC_ADMIN_BASE_URL"); v != "" {
		cfg.Backend.AdminBaseURL = v
	}
	if v := os.Getenv("CLINIC_CITAS_BASE_URL"); v != "" {
		cfg.Backend.CitasBaseURL = v
	}
	if v := os.Getenv("CLINIC_PAGOS_BASE_URL"); v != "" {
		cfg.Backend.PagosBaseURL = v
	}
	if v := os.Getenv("CLINIC_TRATAMIENTOS_BASE_URL"); v != "" {
		cfg.Backend.TratamientosBaseURL = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
}
