package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Confirm asks the user whether to overwrite local data with a payload.
type Confirm func(ctx context.Context, preview Preview) (bool, error)

// Yes confirms every prompt.
func Yes(context.Context, Preview) (bool, error) { return true, nil }

// Ack is the acknowledgment of a push.
type Ack struct {
	StatusCode int   `json:"statusCode"`
	Timestamp  int64 `json:"timestamp"`

	// Verified is set when the pushed payload was read back from the remote.
	Verified bool `json:"verified"`
}

// PullResult tells how a pull ended.
type PullResult string

// Pull results.
const (
	PullApplied  PullResult = "applied"
	PullDeclined PullResult = "declined"
	PullEmpty    PullResult = "empty"
)

// PullOutcome reports a finished pull.
type PullOutcome struct {
	Result  PullResult `json:"result"`
	Preview *Preview   `json:"preview,omitempty"`
	Written []string   `json:"written,omitempty"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithRemote sets the remote endpoint used by Push and Pull.
func WithRemote(r Remote) Option {
	return func(e *Engine) { e.remote = r }
}

// WithReload sets the callback run after a payload is applied, which makes
// every collection manager re-read the store.
func WithReload(fn func(ctx context.Context) error) Option {
	return func(e *Engine) { e.reload = fn }
}

// WithClock sets the time source for payload timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithVerifyPush reads the payload back after every push.
func WithVerifyPush(verify bool) Option {
	return func(e *Engine) { e.verify = verify }
}

// WithSettleDelay sets how long success or error is shown before idle.
func WithSettleDelay(d time.Duration) Option {
	return func(e *Engine) { e.settle = d }
}

// WithStatusHook observes status transitions.
func WithStatusHook(fn func(old, new Status)) Option {
	return func(e *Engine) { e.onStatus = fn }
}

// WithLogger sets the engine logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine gathers, encodes, applies, pushes and pulls payloads.
type Engine struct {
	store    store.Store
	remote   Remote
	reload   func(ctx context.Context) error
	now      func() time.Time
	verify   bool
	settle   time.Duration
	onStatus func(old, new Status)
	logger   *zerolog.Logger
	status   *StatusMachine
}

// New creates an engine over s.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		now:    time.Now,
		settle: constants.SyncSettleDelay,
		logger: logging.Component("syncer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.status = NewStatusMachine(e.settle, e.onStatus)
	return e
}

// Status returns the remote sync state.
func (e *Engine) Status() Status {
	return e.status.Status()
}

// LastError returns the error of the last failed push or pull.
func (e *Engine) LastError() error {
	return e.status.Err()
}

// Gather builds a payload from what is stored right now. Absent or
// unreadable collections become empty.
func (e *Engine) Gather(ctx context.Context) *Payload {
	ctx = logging.WithLogger(ctx, e.logger)

	p := &Payload{Timestamp: e.now().UnixMilli()}
	p.Itinerary, _ = store.Get[[]trip.DayItinerary](ctx, e.store, collections.ItinerarySchema)
	p.Expenses, _ = store.Get[[]trip.Expense](ctx, e.store, collections.ExpensesSchema)
	p.Checklist, _ = store.Get[trip.CheckedState](ctx, e.store, collections.CheckedSchema)
	p.Coupons, _ = store.Get[[]trip.Coupon](ctx, e.store, collections.CouponsSchema)

	if p.Itinerary == nil {
		p.Itinerary = []trip.DayItinerary{}
	}
	if p.Expenses == nil {
		p.Expenses = []trip.Expense{}
	}
	if p.Checklist == nil {
		p.Checklist = trip.CheckedState{}
	}
	if p.Coupons == nil {
		p.Coupons = []trip.Coupon{}
	}
	return p
}

// ExportToken gathers the stored collections and encodes them as a token.
func (e *Engine) ExportToken(ctx context.Context) (string, error) {
	return Encode(e.Gather(ctx))
}

// Apply overwrites every collection present in p, then reloads. It returns
// the storage keys written.
func (e *Engine) Apply(ctx context.Context, p *Payload) ([]string, error) {
	ctx = logging.WithLogger(ctx, e.logger)

	var written []string
	put := func(schema store.Schema, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return errors.WrapParse("json", schema.Key, err)
		}
		if err := store.PutRaw(ctx, e.store, schema, data); err != nil {
			return err
		}
		written = append(written, schema.Key)
		return nil
	}

	if p.Itinerary != nil {
		days := trip.CloneDays(p.Itinerary)
		for i := range days {
			days[i].Items = trip.SortSchedule(days[i].Items)
		}
		if err := put(collections.ItinerarySchema, days); err != nil {
			return written, errors.WrapSync(OpApply, "", err)
		}
	}
	if p.Expenses != nil {
		if err := put(collections.ExpensesSchema, p.Expenses); err != nil {
			return written, errors.WrapSync(OpApply, "", err)
		}
	}
	if p.Checklist != nil {
		if err := put(collections.CheckedSchema, p.Checklist); err != nil {
			return written, errors.WrapSync(OpApply, "", err)
		}
	}
	if p.Coupons != nil {
		if err := put(collections.CouponsSchema, p.Coupons); err != nil {
			return written, errors.WrapSync(OpApply, "", err)
		}
	}

	e.logger.Info().
		Strs("keys", written).
		Int64("timestamp", p.Timestamp).
		Msg("Applied sync payload")

	if e.reload != nil {
		if err := e.reload(ctx); err != nil {
			return written, errors.WrapSync(OpApply, "", err)
		}
	}
	return written, nil
}

// Import decodes a token and, once confirmed, applies it. A declined
// import returns errors.ErrCanceled and changes nothing.
func (e *Engine) Import(ctx context.Context, token string, confirm Confirm) ([]string, error) {
	p, err := Decode(token)
	if err != nil {
		observe(OpImport, ResultError)
		return nil, err
	}
	if confirm != nil {
		ok, err := confirm(ctx, p.Preview())
		if err != nil {
			observe(OpImport, ResultError)
			return nil, err
		}
		if !ok {
			observe(OpImport, ResultDeclined)
			return nil, errors.ErrCanceled
		}
	}

	written, err := e.Apply(ctx, p)
	if err != nil {
		observe(OpImport, ResultError)
		return written, err
	}
	observe(OpImport, ResultSuccess)
	return written, nil
}

// Push uploads the stored collections to the remote.
func (e *Engine) Push(ctx context.Context) (Ack, error) {
	remote, err := e.begin(OpPush)
	if err != nil {
		return Ack{}, err
	}
	log := e.logger.With().Str("operation", OpPush).Str("endpoint", remote.Endpoint()).Logger()

	p := e.Gather(ctx)
	ack := Ack{Timestamp: p.Timestamp}

	ack.StatusCode, err = remote.Push(ctx, p)
	if err == nil && e.verify {
		err = e.verifyPush(ctx, remote, p.Timestamp)
		ack.Verified = err == nil
	}
	if err != nil {
		err = errors.WrapSync(OpPush, remote.Endpoint(), err)
		e.finish(OpPush, err)
		log.Error().Err(err).Int("status", ack.StatusCode).Msg("Push failed")
		return ack, err
	}

	e.finish(OpPush, nil)
	log.Info().
		Int("status", ack.StatusCode).
		Int64("timestamp", ack.Timestamp).
		Bool("verified", ack.Verified).
		Msg("Pushed to remote")
	return ack, nil
}

func (e *Engine) verifyPush(ctx context.Context, remote Remote, timestamp int64) error {
	got, err := remote.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("read back: %w", err)
	}
	if got.Timestamp != timestamp {
		return fmt.Errorf("read back timestamp %d, pushed %d", got.Timestamp, timestamp)
	}
	return nil
}

// Pull fetches the remote payload and, once confirmed, applies it.
func (e *Engine) Pull(ctx context.Context, confirm Confirm) (PullOutcome, error) {
	remote, err := e.begin(OpPull)
	if err != nil {
		return PullOutcome{}, err
	}
	log := e.logger.With().Str("operation", OpPull).Str("endpoint", remote.Endpoint()).Logger()

	p, err := remote.Fetch(ctx)
	if err != nil {
		err = errors.WrapSync(OpPull, remote.Endpoint(), err)
		e.finish(OpPull, err)
		log.Error().Err(err).Msg("Pull failed")
		return PullOutcome{}, err
	}

	if p.Timestamp == 0 {
		e.status.Reset()
		observe(OpPull, ResultEmpty)
		log.Info().Msg("Remote has no data yet")
		return PullOutcome{Result: PullEmpty}, nil
	}

	preview := p.Preview()
	if confirm != nil {
		ok, err := confirm(ctx, preview)
		if err != nil {
			e.finish(OpPull, err)
			return PullOutcome{Preview: &preview}, err
		}
		if !ok {
			e.status.Reset()
			observe(OpPull, ResultDeclined)
			return PullOutcome{Result: PullDeclined, Preview: &preview}, nil
		}
	}

	written, err := e.Apply(ctx, p)
	if err != nil {
		e.finish(OpPull, err)
		return PullOutcome{Preview: &preview, Written: written}, err
	}

	e.finish(OpPull, nil)
	log.Info().Time("remote_time", preview.Timestamp).Strs("keys", written).Msg("Pulled from remote")
	return PullOutcome{Result: PullApplied, Preview: &preview, Written: written}, nil
}

func (e *Engine) begin(op string) (Remote, error) {
	if e.remote == nil {
		observe(op, ResultError)
		return nil, errors.NewConfigError("sync", "no remote endpoint configured", nil)
	}
	if err := e.status.Begin(); err != nil {
		observe(op, ResultBusy)
		return nil, err
	}
	return e.remote, nil
}

func (e *Engine) finish(op string, err error) {
	e.status.Finish(err)
	if err != nil {
		observe(op, ResultError)
		return
	}
	observe(op, ResultSuccess)
}
