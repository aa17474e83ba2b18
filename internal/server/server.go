// Package server exposes a tripmap client over HTTP: a JSON API for every
// collection, sync and live data, a relay that stands in for the
// spreadsheet sync endpoint, and realtime change notifications over
// WebSocket and SSE.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap"
	"github.com/agentstation/tripmap/internal/server/events"
	"github.com/agentstation/tripmap/internal/server/events/adapters"
	"github.com/agentstation/tripmap/internal/server/middleware"
	"github.com/agentstation/tripmap/internal/server/sse"
	ws "github.com/agentstation/tripmap/internal/server/websocket"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	tm             tripmap.Client
	relay          store.Store
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	limiter        *middleware.RateLimiter
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// New creates a server for tm. The relay slot lives in relay, which is
// normally the same store tm persists to.
func New(tm tripmap.Client, relay store.Store, cfg Config, logger *zerolog.Logger) (*Server, error) {
	if tm == nil {
		return nil, errors.NewConfigError("server", "tripmap client is required", nil)
	}
	if relay == nil {
		return nil, errors.NewConfigError("server", "relay store is required", nil)
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/api/v1"
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(events.NewRealtime(wsHub, sseBroadcaster))
	if len(cfg.KafkaBrokers) > 0 {
		broker.Subscribe(adapters.NewKafkaSubscriber(adapters.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		}))
		logger.Info().
			Strs("brokers", cfg.KafkaBrokers).
			Str("topic", cfg.KafkaTopic).
			Msg("Publishing trip events to Kafka")
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		tm:             tm,
		relay:          relay,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, logger)
	}

	s.connectHooks()
	return s, nil
}

// connectHooks forwards tripmap events to the broker.
func (s *Server) connectHooks() {
	s.tm.OnChange(func(ev tripmap.ChangeEvent) {
		s.broker.Publish(events.Changed(ev))
	})

	s.tm.OnReload(func(ev tripmap.ReloadEvent) {
		s.broker.Publish(events.Reloaded(ev.Source, ev.Keys, ev.At))
	})

	s.tm.OnSyncStatus(func(old, updated syncer.Status) {
		s.broker.Publish(events.SyncStatus(old, updated, s.tm.SyncError()))
	})

	s.logger.Debug().Msg("Trip hooks connected to event broker")
}

// Start starts background services (broker, WebSocket hub, SSE
// broadcaster and rate limiter pruning).
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
	if s.limiter != nil {
		go s.pruneVisitors(s.ctx)
	}
	s.logger.Debug().Msg("Background services started")
}

func (s *Server) pruneVisitors(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.limiter.Prune(now)
		}
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops background services. Connected realtime clients are
// disconnected.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// ListenAndServe starts the background services and serves HTTP until ctx
// is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.Start()

	httpServer := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", httpServer.Addr).Msg("Starting tripmap API server")
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		_ = s.Shutdown(context.Background())
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop the realtime services first so hijacked and streaming
	// connections do not hold up the HTTP shutdown.
	_ = s.Shutdown(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("Server stopped")
	return nil
}

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *ws.Hub {
	return s.wsHub
}

// SSEBroadcaster returns the SSE broadcaster.
func (s *Server) SSEBroadcaster() *sse.Broadcaster {
	return s.sseBroadcaster
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
