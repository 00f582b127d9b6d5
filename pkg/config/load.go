package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load applies the first environment file found among paths, searching
// parent directories for relative names, then reads the configuration from
// the process environment. Variables already set are never overridden.
func Load(paths ...string) (*App, error) {
	logger := slog.Default()
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		found, err := FindEnvFile(p)
		if err != nil {
			logger.Debug("Environment file not found", "path", p)
			continue
		}
		if err := godotenv.Load(found); err != nil {
			logger.Warn("Failed to load environment file", "path", found, "error", err)
			continue
		}
		logger.Info("Loaded environment file", "path", found)
		break
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger := slog.Default()
	logger.Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"auth_access_secret", maskValue(cfg.Auth.Jwt.AccessSecret),
		"auth_access_expiry", cfg.Auth.Jwt.AccessExpiry,
		"auth_refresh_ttl_days", cfg.Auth.RefreshTTLDays,
		"ledger_default_currency", cfg.Ledger.DefaultCurrency,
		"redis", maskValue(cfg.Redis.URL),
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
