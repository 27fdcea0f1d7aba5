package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	FaceitAPIKey  string
	SteamAPIKey   string
	FaceitBaseURL string
	SteamBaseURL  string
	ServerPort    string
	LogLevel      string

	UpstreamTimeout    time.Duration
	UpstreamMaxRetries int
	FaceitRPS          float64

	RankingCacheSize int
	RankingCacheTTL  time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		FaceitAPIKey:  getEnv("FACEIT_API_KEY", ""),
		SteamAPIKey:   getEnv("STEAM_API_KEY", ""),
		FaceitBaseURL: getEnv("FACEIT_BASE_URL", "https://open.faceit.com/data/v4"),
		SteamBaseURL:  getEnv("STEAM_BASE_URL", "https://api.steampowered.com"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.UpstreamMaxRetries, err = getInt("UPSTREAM_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.FaceitRPS, err = getFloat("FACEIT_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.RankingCacheSize, err = getInt("RANKING_CACHE_SIZE", 100); err != nil {
		return nil, err
	}
	if cfg.RankingCacheTTL, err = getDuration("RANKING_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	if cfg.FaceitAPIKey == "" {
		return nil, fmt.Errorf("FACEIT_API_KEY is required")
	}
	if cfg.SteamAPIKey == "" {
		return nil, fmt.Errorf("STEAM_API_KEY is required")
	}
	if cfg.UpstreamMaxRetries < 0 {
		return nil, fmt.Errorf("UPSTREAM_MAX_RETRIES must not be negative")
	}
	if cfg.RankingCacheSize <= 0 {
		return nil, fmt.Errorf("RANKING_CACHE_SIZE must be positive")
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("upstream_timeout", cfg.UpstreamTimeout).
		Int("upstream_max_retries", cfg.UpstreamMaxRetries).
		Float64("faceit_rps", cfg.FaceitRPS).
		Int("ranking_cache_size", cfg.RankingCacheSize).
		Dur("ranking_cache_ttl", cfg.RankingCacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

var Module = fx.Provide(Load)
