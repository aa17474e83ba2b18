// Package save configures where and in which format a trip backup is written.
package save

import (
	"io"
	"strings"

	"github.com/agentstation/tripmap/pkg/errors"
)

// Format is a backup encoding.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// ParseFormat parses a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, errors.NewValidationError("format", s, "must be json or yaml")
}

// Options is the configuration for a backup.
type Options struct {
	path   string
	writer io.Writer
	format Format
}

// Path returns the destination file.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the destination writer, which wins over Path.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Format returns the encoding.
func (s *Options) Format() Format {
	return s.format
}

// Defaults returns JSON with no destination.
func Defaults() *Options {
	return &Options{format: FormatJSON}
}

// Apply applies the given options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures a backup.
type Option func(*Options)

// WithFormat sets the encoding.
func WithFormat(f Format) Option {
	return func(s *Options) {
		s.format = f
	}
}

// WithPath writes the backup to a file, created with owner-only permissions.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter writes the backup to w.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}
