// Package app provides the application context and dependency management
// for the tripmap CLI: configuration, logging, the shared store and trip
// client, and their shutdown.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap"
	"github.com/agentstation/tripmap/internal/bot"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/output"
	"github.com/agentstation/tripmap/internal/live"
	"github.com/agentstation/tripmap/internal/live/advisor"
	"github.com/agentstation/tripmap/internal/live/exchange"
	"github.com/agentstation/tripmap/internal/live/weather"
	"github.com/agentstation/tripmap/internal/server"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/store"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the tripmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Store and trip client (lazy-initialized, singleton)
	mu    sync.Mutex
	store store.Store
	trip  tripmap.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --output format, detected from the terminal when unset.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Store returns the configured store, opening it on first use.
func (a *App) Store() (store.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.storeLocked()
}

func (a *App) storeLocked() (store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	ctx, cancel := context.WithTimeout(logging.WithLogger(context.Background(), a.logger), constants.StoreOpenTimeout)
	defer cancel()

	s, err := store.Open(ctx, a.config.Store)
	if err != nil {
		return nil, errors.WrapResource("open", "store", a.config.Store, err)
	}
	a.store = s
	return s, nil
}

// Trip returns the trip client, creating it lazily if needed.
func (a *App) Trip() (tripmap.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.trip != nil {
		return a.trip, nil
	}

	s, err := a.storeLocked()
	if err != nil {
		return nil, err
	}

	opts := []tripmap.Option{
		tripmap.WithStore(s),
		tripmap.WithLogger(a.logger),
		tripmap.WithVerifyPush(a.config.VerifyPush),
		tripmap.WithLive(a.newLive()),
	}
	if a.config.SyncURL != "" {
		opts = append(opts, tripmap.WithSyncURL(a.config.SyncURL))
	}

	tm, err := tripmap.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "trip", "", err)
	}
	a.trip = tm
	return tm, nil
}

// newLive wires the public weather and exchange-rate APIs, plus the tips
// advisor when a Gemini key or Google Cloud project is configured.
func (a *App) newLive() *live.Service {
	opts := []live.Option{
		live.WithWeather(weather.New("")),
		live.WithRates(exchange.New("")),
		live.WithLogger(a.logger),
	}

	adv, err := advisor.NewFromConfig(advisor.Config{
		APIKey:   a.config.GeminiAPIKey,
		Project:  a.config.GoogleCloudProject,
		Location: a.config.GoogleCloudLocation,
		Model:    a.config.AdvisorModel,
	})
	if err != nil {
		a.logger.Debug().Err(err).Msg("Tips advisor disabled, using seed tips")
	} else {
		opts = append(opts, live.WithTips(adv))
	}
	return live.New(opts...)
}

// ServerConfig returns server defaults overlaid with the configured API key
// and Kafka settings.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.APIKey = a.config.APIKey
	cfg.KafkaBrokers = a.config.KafkaBrokers
	if a.config.KafkaTopic != "" {
		cfg.KafkaTopic = a.config.KafkaTopic
	}
	return cfg
}

// BotConfig returns the Telegram bot settings.
func (a *App) BotConfig() bot.Config {
	return bot.Config{
		Token:        a.config.TelegramToken,
		AllowedChats: a.config.TelegramChats,
	}
}

// Shutdown releases the trip client and the store.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var firstErr error
	if a.trip != nil {
		if err := a.trip.Close(); err != nil {
			firstErr = err
		}
		a.trip = nil
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.store = nil
	}
	return firstErr
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets the store instead of opening the configured DSN (useful for testing).
func WithStore(s store.Store) Option {
	return func(a *App) error {
		a.store = s
		return nil
	}
}

// WithTrip sets a custom trip client (useful for testing).
func WithTrip(tm tripmap.Client) Option {
	return func(a *App) error {
		a.trip = tm
		return nil
	}
}
