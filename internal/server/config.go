package server

import (
	"time"

	"github.com/agentstation/tripmap/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix   string
	MaxBodyBytes int64

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Authentication is on when APIKey is set.
	APIKey string

	// Rate limiting, in requests per minute per IP (0 to disable)
	RateLimit int
	RateBurst int

	// HTTP timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Features
	MetricsEnabled bool

	// Kafka publishing of change events; disabled when Brokers is empty.
	KafkaBrokers []string
	KafkaTopic   string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            8080,
		PathPrefix:      "/api/v1",
		MaxBodyBytes:    constants.MaxRequestBodyBytes,
		CORSEnabled:     true,
		CORSOrigins:     []string{"*"},
		RateLimit:       constants.DefaultRateLimit,
		RateBurst:       constants.BurstSize,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MetricsEnabled:  true,
		KafkaTopic:      "tripmap.events",
	}
}
