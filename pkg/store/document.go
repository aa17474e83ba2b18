package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
)

// Document is the stored form of a collection.
type Document struct {
	Schema  string          `json:"schema"`
	Version int             `json:"version"`
	SavedAt time.Time       `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

// Migration upgrades the data of a document by exactly one version.
type Migration func(ctx context.Context, data json.RawMessage) (json.RawMessage, error)

// Schema describes one stored collection. Migrations[i] upgrades version i
// to i+1, so the current version is len(Migrations). Version 0 is the bare
// JSON value written without an envelope.
type Schema struct {
	Key        string
	Migrations []Migration
}

// Version returns the version documents are written with.
func (s Schema) Version() int {
	return len(s.Migrations)
}

// Identity is a migration that only bumps the version.
func Identity(_ context.Context, data json.RawMessage) (json.RawMessage, error) {
	return data, nil
}

// NewSchema returns a schema at version 1 whose only migration wraps legacy bare values.
func NewSchema(key string) Schema {
	return Schema{Key: key, Migrations: []Migration{Identity}}
}

// Decode parses raw stored bytes for schema and migrates them to the current
// version. Bare JSON is read as version 0.
func (s Schema) Decode(ctx context.Context, raw []byte) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.NewParseError("json", s.Key, "empty document", nil)
	}
	if !json.Valid(raw) {
		return nil, errors.NewParseError("json", s.Key, "invalid JSON", nil)
	}

	version, data := 0, json.RawMessage(raw)
	if doc, ok := s.envelope(raw); ok {
		version, data = doc.Version, doc.Data
	}

	if version > s.Version() {
		return nil, errors.NewParseError("json", s.Key,
			fmt.Sprintf("document version %d is newer than supported version %d", version, s.Version()), nil)
	}

	for v := version; v < s.Version(); v++ {
		migrated, err := s.Migrations[v](ctx, data)
		if err != nil {
			return nil, errors.WrapResource("migrate", s.Key, fmt.Sprintf("v%d", v), err)
		}
		data = migrated
		logging.Ctx(ctx).Debug().
			Str("key", s.Key).
			Int("from", v).
			Int("to", v+1).
			Msg("Migrated document")
	}
	return data, nil
}

// envelope reports whether raw is a Document written for this schema.
func (s Schema) envelope(raw []byte) (Document, bool) {
	if raw[0] != '{' {
		return Document{}, false
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, false
	}
	if doc.Schema != s.Key || doc.Data == nil {
		return Document{}, false
	}
	return doc, true
}

// Encode wraps data in a current-version document.
func (s Schema) Encode(data json.RawMessage, now time.Time) ([]byte, error) {
	return json.Marshal(Document{
		Schema:  s.Key,
		Version: s.Version(),
		SavedAt: now.UTC(),
		Data:    data,
	})
}

// Get loads the value stored under schema.Key into a T.
//
// Get never fails toward the caller: a missing, unreadable, undecodable or
// unmigratable document yields (zero, false) and a warning in the context
// logger, and the caller substitutes its default.
func Get[T any](ctx context.Context, s Store, schema Schema) (T, bool) {
	var zero T
	log := logging.Ctx(ctx)

	raw, err := s.Load(ctx, schema.Key)
	if err != nil {
		if !errors.IsNotFound(err) {
			log.Warn().Err(err).Str("key", schema.Key).Msg("Failed to read document, using default")
		}
		return zero, false
	}

	data, err := schema.Decode(ctx, raw)
	if err != nil {
		log.Warn().Err(err).Str("key", schema.Key).Msg("Failed to decode document, using default")
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		log.Warn().Err(err).Str("key", schema.Key).Msg("Document does not match expected shape, using default")
		return zero, false
	}
	return value, true
}

// Put stores v under schema.Key as a current-version document.
func Put[T any](ctx context.Context, s Store, schema Schema, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.WrapResource("encode", schema.Key, "", err)
	}
	return PutRaw(ctx, s, schema, data)
}

// PutRaw stores already-encoded JSON under schema.Key.
func PutRaw(ctx context.Context, s Store, schema Schema, data json.RawMessage) error {
	doc, err := schema.Encode(data, time.Now())
	if err != nil {
		return errors.WrapResource("encode", schema.Key, "", err)
	}
	if err := s.Save(ctx, schema.Key, doc); err != nil {
		return errors.WrapResource("save", schema.Key, "", err)
	}
	return nil
}
