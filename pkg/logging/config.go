package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap/pkg/constants"
)

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum log level for components without an override.
	Level string

	// Format is json, console or auto. Auto picks console on a terminal.
	Format string

	// Output is stderr, stdout, discard or a file path. Parent directories
	// of a file path are created.
	Output string

	// TimeFormat for console timestamps (kitchen, rfc3339, unix, or a Go layout).
	TimeFormat string

	NoColor   bool
	AddCaller bool

	// Components overrides Level per component, keyed by the name passed
	// to Component: syncer, live, store, transport, telegram and so on.
	Components map[string]string

	// Device names the phone or laptop writing the log. Every line carries
	// it, so logs from two devices sharing a trip can be merged.
	Device string

	// Fields are attached to every log line.
	Fields map[string]any
}

// DefaultComponentLevels is the floor for components without an override.
// The transport client logs every request at debug, which drowns out the
// sync engine when the base level is debug.
var DefaultComponentLevels = map[string]string{
	"transport": "info",
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		Components: make(map[string]string),
		Fields:     make(map[string]any),
	}
}

// ConfigFromEnv builds a Config from TRIPMAP_LOG_* variables, falling back
// to the unprefixed LOG_* names:
//
//	TRIPMAP_LOG_LEVEL       debug
//	TRIPMAP_LOG_FORMAT      json
//	TRIPMAP_LOG_OUTPUT      ~/.tripmap/tripmap.log
//	TRIPMAP_LOG_COMPONENTS  syncer=debug,live=warn
//	TRIPMAP_LOG_FIELDS      trip=kansai
//	TRIPMAP_DEVICE          pixel
//
// getenv is usually os.Getenv.
func ConfigFromEnv(getenv func(string) string) *Config {
	lookup := func(key string) string {
		if v := getenv(constants.EnvPrefix + "_" + key); v != "" {
			return v
		}
		return getenv(key)
	}

	cfg := DefaultConfig()
	cfg.NoColor = getenv("NO_COLOR") != ""
	if v := lookup("LOG_LEVEL"); v != "" {
		cfg.Level = v
	} else if getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if v := lookup("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := lookup("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := lookup("LOG_TIME_FORMAT"); v != "" {
		cfg.TimeFormat = v
	}
	cfg.AddCaller = lookup("LOG_CALLER") == "true"
	for k, v := range ParseComponentLevels(lookup("LOG_COMPONENTS")) {
		cfg.Components[k] = v
	}
	for k, v := range parseFields(lookup("LOG_FIELDS")) {
		cfg.Fields[k] = v
	}
	cfg.Device = getenv(constants.EnvPrefix + "_DEVICE")
	return cfg
}

// NewLoggerFromConfig creates a new logger from configuration.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(lowestLevel(level, cfg.Components))

	ctx := zerolog.New(writerFor(cfg)).
		Level(level).
		With().
		Timestamp().
		Str("service", "tripmap")
	if cfg.Device != "" {
		ctx = ctx.Str("device", cfg.Device)
	}
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	for k, v := range cfg.Fields {
		ctx = addField(ctx, k, v)
	}
	return ctx.Logger()
}

// Configure replaces the default logger with one built from cfg and
// installs its component overrides.
func Configure(cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	SetDefault(NewLoggerFromConfig(cfg))
	setComponentLevels(cfg.Components)
}

// ConfigureFromEnv configures the default logger from the environment.
func ConfigureFromEnv() {
	Configure(ConfigFromEnv(os.Getenv))
}

var (
	componentMu     sync.RWMutex
	componentLevels = map[string]zerolog.Level{}
)

func setComponentLevels(levels map[string]string) {
	parsed := make(map[string]zerolog.Level, len(levels))
	for name, lvl := range levels {
		parsed[name] = parseLevel(lvl)
	}
	componentMu.Lock()
	componentLevels = parsed
	componentMu.Unlock()
}

// componentLevel resolves the level of a component logger derived from a
// logger at base: an override wins, otherwise a default floor may raise it.
func componentLevel(name string, base zerolog.Level) zerolog.Level {
	componentMu.RLock()
	lvl, ok := componentLevels[name]
	componentMu.RUnlock()
	if ok {
		return lvl
	}
	if floor, ok := DefaultComponentLevels[name]; ok {
		if l := parseLevel(floor); l > base {
			return l
		}
	}
	return base
}

// lowestLevel is the most verbose of base and the overrides. The global
// level has to admit it or a debug override would be filtered out.
func lowestLevel(base zerolog.Level, components map[string]string) zerolog.Level {
	lowest := base
	for _, lvl := range components {
		if l := parseLevel(lvl); l < lowest {
			lowest = l
		}
	}
	return lowest
}

// ParseComponentLevels parses "syncer=debug,live=warn". Pairs without a
// name or level are skipped.
func ParseComponentLevels(s string) map[string]string {
	out := make(map[string]string)
	for name, v := range parseFields(s) {
		if lvl, ok := v.(string); ok && name != "" && lvl != "" {
			out[strings.ToLower(name)] = strings.ToLower(lvl)
		}
	}
	return out
}

func writerFor(cfg *Config) io.Writer {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	case "discard", "none":
		output = io.Discard
	default:
		output = openLogFile(cfg.Output)
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := output.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "console"
		}
	}
	if format != "console" && format != "pretty" {
		return output
	}
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: parseTimeFormat(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

// openLogFile appends to path, falling back to stderr when it cannot be
// opened.
func openLogFile(path string) io.Writer {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return os.Stderr
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.SecureFilePermissions)
	if err != nil {
		return os.Stderr
	}
	return file
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	if l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil {
		return l
	}
	return zerolog.InfoLevel
}

func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "unix", "epoch":
		return ""
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}

// parseFields parses comma-separated key=value pairs.
func parseFields(fields string) map[string]any {
	result := make(map[string]any)
	for _, field := range strings.Split(fields, ",") {
		if key, value, ok := strings.Cut(field, "="); ok {
			result[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return result
}

func addField(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case error:
		if key == "error" || key == "err" {
			return ctx.Err(v)
		}
		return ctx.Str(key, v.Error())
	default:
		return ctx.Interface(key, v)
	}
}
