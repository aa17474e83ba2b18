package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap"
	"github.com/agentstation/tripmap/internal/bot"
	"github.com/agentstation/tripmap/internal/server"
	"github.com/agentstation/tripmap/pkg/store"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	TripFunc         func() (tripmap.Client, error)
	StoreFunc        func() (store.Store, error)
	ServerConfigFunc func() server.Config
	BotConfigFunc    func() bot.Config
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Trip returns a trip using the mock function or nil.
func (m *Mock) Trip() (tripmap.Client, error) {
	if m.TripFunc != nil {
		return m.TripFunc()
	}
	return nil, nil
}

// Store returns a store using the mock function or nil.
func (m *Mock) Store() (store.Store, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc()
	}
	return nil, nil
}

// ServerConfig returns the mock config or server defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// BotConfig returns the mock config or an empty one.
func (m *Mock) BotConfig() bot.Config {
	if m.BotConfigFunc != nil {
		return m.BotConfigFunc()
	}
	return bot.Config{}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
