// Package app holds process-level configuration sourced from the
// environment.
package app

import (
	"time"

	"github.com/forgelabs/forge-backend/internal/platform/envutil"
)

type Config struct {
	Port         string
	LogMode      string
	Environment  string
	Version      string
	AllowOrigins []string

	ShutdownTimeout time.Duration
}

func LoadConfig() Config {
	return Config{
		Port:        envutil.String("PORT", "8080"),
		LogMode:     envutil.String("LOG_MODE", "development"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
		AllowOrigins: envutil.List("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		}),
		ShutdownTimeout: time.Duration(envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}
