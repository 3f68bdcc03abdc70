package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first env file found among envFilePath (searching parent
// directories), falling back to ./.env, then processes the environment.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	if len(envFilePath) == 0 {
		logger.Debug("No environment file specified, trying default .env")
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}

		return loadFromEnv()
	}

	logger.Info("No valid environment files found, using default .env")
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.Scheduler.HourUTC < 0 || cfg.Scheduler.HourUTC > 23 {
		return nil, fmt.Errorf("SCHEDULER_HOUR_UTC must be within 0..23, got %d", cfg.Scheduler.HourUTC)
	}

	logger := slog.Default()
	logger.Info("Environment variables loaded from .env file")
	logger.Info("App config loaded",
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"db", maskValue(cfg.DB.Url),
		"auth_jwt_expiry", cfg.Auth.Jwt.Expiry,
		"redis", maskValue(cfg.Redis.URL),
		"generator_provider", cfg.Generator.Provider,
		"generator_model", cfg.Generator.Model,
		"generator_api_key", maskValue(cfg.Generator.ApiKey),
		"plaid_env", cfg.Plaid.Env,
		"plaid_client_id", maskValue(cfg.Plaid.ClientID),
		"scheduler_enabled", cfg.Scheduler.Enabled,
		"scheduler_hour_utc", cfg.Scheduler.HourUTC,
	)
	return &cfg, nil
}
