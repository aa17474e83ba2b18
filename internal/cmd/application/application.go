// Package application provides the application interface for tripmap commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            tm, err := app.Trip()
//	            if err != nil {
//	                return err
//	            }
//	            // ... use tm
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    TripFunc: func() (tripmap.Client, error) {
//	        return testTrip, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap"
	"github.com/agentstation/tripmap/internal/bot"
	"github.com/agentstation/tripmap/internal/server"
	"github.com/agentstation/tripmap/pkg/store"
)

// Application provides what commands need from the running CLI.
// The App struct from cmd/tripmap/app implements it.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Trip returns the shared trip client, opening the store on first use.
	Trip() (tripmap.Client, error)

	// Store returns the store backing Trip. The server also keeps its
	// relay slot there.
	Store() (store.Store, error)

	// ServerConfig returns the server defaults from config files and env.
	ServerConfig() server.Config

	// BotConfig returns the Telegram bot settings.
	BotConfig() bot.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
