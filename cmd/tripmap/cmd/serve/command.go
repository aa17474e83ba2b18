// Package serve provides the serve command, which runs the tripmap REST
// API with its WebSocket and SSE feeds and the sync relay.
package serve

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/server"
	"github.com/agentstation/tripmap/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cfg := app.ServerConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the trip over a REST API with realtime updates",
		Long: `Start the tripmap API server.

Features:
  - REST endpoints for every trip collection under the path prefix
  - WebSocket (/updates/ws) and Server-Sent Events (/updates/stream) feeds
  - A sync relay (/relay) that other devices can push to and pull from
  - Rate limiting (requests per minute per IP)
  - API key authentication when --api-key is set
  - CORS, Prometheus metrics and graceful shutdown

Environment Variables:
  HTTP_PORT         - Override the listen port
  HTTP_HOST         - Override the bind address
  TRIPMAP_API_KEY   - API key required on every non-public route`,
		Example: `  # Start on the default port 8080
  tripmap serve

  # Listen on all interfaces and require an API key
  tripmap serve --host 0.0.0.0 --api-key s3cret

  # Publish change events to Kafka
  tripmap serve --kafka-brokers localhost:9092`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyEnv(cmd, &cfg); err != nil {
				return err
			}

			tm, err := app.Trip()
			if err != nil {
				return err
			}
			relay, err := app.Store()
			if err != nil {
				return err
			}

			logger := app.Logger()
			logger.Info().
				Int("port", cfg.Port).
				Str("host", cfg.Host).
				Str("prefix", cfg.PathPrefix).
				Bool("auth", cfg.APIKey != "").
				Int("rate_limit", cfg.RateLimit).
				Msg("Starting API server")

			srv, err := server.New(tm, relay, cfg, logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	fl := cmd.Flags()

	// Server configuration flags
	fl.IntVarP(&cfg.Port, "port", "p", cfg.Port, "server port")
	fl.StringVar(&cfg.Host, "host", cfg.Host, "bind address")
	fl.StringVar(&cfg.PathPrefix, "prefix", cfg.PathPrefix, "API path prefix")

	// CORS flags
	fl.BoolVar(&cfg.CORSEnabled, "cors", cfg.CORSEnabled, "enable CORS")
	fl.StringSliceVar(&cfg.CORSOrigins, "cors-origins", cfg.CORSOrigins, "allowed CORS origins (comma-separated)")

	// Authentication flags
	fl.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "require this key in X-API-Key or a Bearer token")

	// Performance flags
	fl.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "requests per minute per IP (0 to disable)")
	fl.IntVar(&cfg.RateBurst, "rate-burst", cfg.RateBurst, "burst allowance above the rate limit")

	// Timeout flags
	fl.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	fl.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	fl.DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "HTTP idle timeout")
	fl.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")

	// Features flags
	fl.BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "enable the /metrics endpoint")
	fl.StringSliceVar(&cfg.KafkaBrokers, "kafka-brokers", cfg.KafkaBrokers, "Kafka brokers for change events (comma-separated)")
	fl.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "Kafka topic for change events")

	return cmd
}

// applyEnv lets HTTP_PORT and HTTP_HOST override the defaults, but not
// explicit flags.
func applyEnv(cmd *cobra.Command, cfg *server.Config) error {
	if v := os.Getenv("HTTP_PORT"); v != "" && !cmd.Flags().Changed("port") {
		port, err := parsePort(v)
		if err != nil {
			return err
		}
		cfg.Port = port
	}
	if v := os.Getenv("HTTP_HOST"); v != "" && !cmd.Flags().Changed("host") {
		cfg.Host = v
	}
	return nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, errors.NewValidationError("port", s, "must be between 1 and 65535")
	}
	return port, nil
}
