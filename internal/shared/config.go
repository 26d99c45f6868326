package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	LogLevel     string
	HTTPAddr     string
	HTTPTimeout  time.Duration
	MetricsAddr  string
	StoreBackend string // mysql | memory
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	ProvidersURL string
	ProvidersRPS int
	CacheTTL     time.Duration
	SeedFile     string
	SeedWorkers  int
}

// Load reads the environment, after an optional .env file in the working
// directory. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		LogLevel:     env("LOG_LEVEL", "info"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		HTTPTimeout:  time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		StoreBackend: strings.ToLower(env("STORE_BACKEND", "mysql")),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		ProvidersURL: os.Getenv("PROVIDERS_BASE_URL"),
		ProvidersRPS: atoi("PROVIDERS_RPS", 5),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SeedFile:     env("SEED_FILE", "seed.toml"),
		SeedWorkers:  atoi("SEED_WORKERS", 4),
	}
	if c.ProvidersURL == "" {
		log.Warn().Msg("PROVIDERS_BASE_URL is empty, resource routes are disabled")
	}
	if c.StoreBackend != "mysql" && c.StoreBackend != "memory" {
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, using mysql")
		c.StoreBackend = "mysql"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
