package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/store/file"
	"github.com/agentstation/tripmap/pkg/store/memory"
	"github.com/agentstation/tripmap/pkg/store/mongo"
	"github.com/agentstation/tripmap/pkg/store/postgres"
	"github.com/agentstation/tripmap/pkg/store/redis"
	"github.com/agentstation/tripmap/pkg/store/sqlite"
)

// Backend names returned by Scheme.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

// Scheme returns the backend a DSN selects and the backend-specific remainder.
//
//	memory://                         in-process map
//	file:///var/lib/tripmap, ./data   directory of JSON files
//	sqlite:///var/lib/tripmap.db      SQLite database file
//	postgres://user:pw@host/db        PostgreSQL
//	redis://host:6379/0               Redis
//	mongodb://host/tripmap            MongoDB
func Scheme(dsn string) (backend, target string) {
	switch {
	case dsn == "" || strings.HasPrefix(dsn, "memory:"):
		return BackendMemory, ""
	case strings.HasPrefix(dsn, "file://"):
		return BackendFile, strings.TrimPrefix(dsn, "file://")
	case strings.HasPrefix(dsn, "sqlite://"):
		return BackendSQLite, strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres, dsn
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return BackendRedis, dsn
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return BackendMongo, dsn
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return BackendSQLite, dsn
	default:
		return BackendFile, dsn
	}
}

// Open opens the backend selected by dsn. A leading "~/" in file and
// SQLite paths expands to the home directory.
func Open(ctx context.Context, dsn string) (Store, error) {
	backend, target := Scheme(dsn)
	logging.Ctx(ctx).Debug().Str("backend", backend).Msg("Opening store")

	switch backend {
	case BackendMemory:
		return memory.New(), nil
	case BackendFile:
		return file.New(expandHome(target))
	case BackendSQLite:
		return sqlite.Open(ctx, expandHome(target))
	case BackendPostgres:
		return postgres.Open(ctx, target)
	case BackendRedis:
		return redis.Open(ctx, target)
	case BackendMongo:
		return mongo.Open(ctx, target)
	default:
		return nil, errors.NewConfigError("store", "unsupported store "+dsn, nil)
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
