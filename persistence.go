package tripmap

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/save"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Persistence handles reloading, backups and the store lifecycle.
type Persistence interface {
	// Reload discards every manager's memory and re-reads the store
	Reload(ctx context.Context)

	// Backup writes a snapshot of every collection
	Backup(ctx context.Context, opts ...save.Option) error

	// Snapshot returns every collection as currently held in memory
	Snapshot() Snapshot

	// Close releases the store when the client opened it
	Close() error
}

// Snapshot is every collection of the trip, local-only ones included.
type Snapshot struct {
	Itinerary           []trip.DayItinerary      `json:"itinerary"`
	Flights             []trip.Flight            `json:"flights"`
	Expenses            []trip.Expense           `json:"expenses"`
	ChecklistCategories []trip.ChecklistCategory `json:"checklistCategories"`
	Checked             trip.CheckedState        `json:"checked"`
	Coupons             []trip.Coupon            `json:"coupons"`
	ShoppingItems       []trip.ShoppingItem      `json:"shoppingItems"`
	ShoppingTypes       []string                 `json:"shoppingTypes"`
	SyncURL             string                   `json:"syncUrl"`
}

// Reload discards every manager's memory and re-reads the store.
func (c *client) Reload(ctx context.Context) {
	c.set.Load(ctx)
	c.reloaded(ReloadManual, nil)
}

// Snapshot returns every collection as currently held in memory.
func (c *client) Snapshot() Snapshot {
	return Snapshot{
		Itinerary:           c.set.Itinerary.Days(),
		Flights:             c.set.Flights.List(),
		Expenses:            c.set.Expenses.List(),
		ChecklistCategories: c.set.Checklist.Categories(),
		Checked:             c.set.Checklist.Checked(),
		Coupons:             c.set.Coupons.List(),
		ShoppingItems:       c.set.Shopping.Items(),
		ShoppingTypes:       c.set.Shopping.Types(),
		SyncURL:             c.SyncURL(),
	}
}

// Backup writes a snapshot as JSON or YAML to the configured writer or path.
func (c *client) Backup(ctx context.Context, opts ...save.Option) error {
	o := save.Defaults().Apply(opts...)
	if !o.Format().IsValid() {
		return errors.NewValidationError("format", o.Format(), "unsupported backup format")
	}

	data, err := encodeSnapshot(c.Snapshot(), o.Format())
	if err != nil {
		return errors.WrapParse(o.Format().String(), "backup", err)
	}

	if w := o.Writer(); w != nil {
		if _, err := w.Write(data); err != nil {
			return errors.WrapIO("write", "backup", err)
		}
		return nil
	}
	if o.Path() == "" {
		return &errors.ConfigError{Component: "backup", Message: "no path or writer given"}
	}

	if err := os.MkdirAll(filepath.Dir(o.Path()), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(o.Path()), err)
	}
	if err := os.WriteFile(o.Path(), data, constants.SecureFilePermissions); err != nil {
		return errors.WrapIO("write", o.Path(), err)
	}
	c.options.logger.Info().Str("path", o.Path()).Str("format", o.Format().String()).Msg("Backup written")
	return nil
}

func encodeSnapshot(s Snapshot, format save.Format) ([]byte, error) {
	if format == save.FormatYAML {
		return yaml.Marshal(s)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close releases the store when the client opened it.
func (c *client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.ownsStore {
			err = c.store.Close()
		}
	})
	return err
}
