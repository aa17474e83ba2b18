package tripmap

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap/internal/live"
	"github.com/agentstation/tripmap/internal/transport"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	store       store.Store
	storeDSN    string
	syncURL     string
	remote      syncer.Remote
	verifyPush  bool
	httpClient  *http.Client
	now         func() time.Time
	settleDelay time.Duration
	logger      *zerolog.Logger
	live        *live.Service
}

func defaults() *options {
	return &options{
		storeDSN:    "memory://",
		now:         time.Now,
		settleDelay: constants.SyncSettleDelay,
		logger:      logging.Default(),
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) transportOptions() []transport.Option {
	opts := []transport.Option{transport.WithLogger(o.logger)}
	if o.httpClient != nil {
		opts = append(opts, transport.WithHTTPClient(o.httpClient))
	}
	return opts
}

// WithStore uses s as the store. The caller keeps ownership and closes it.
func WithStore(s store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithStoreDSN opens the store selected by dsn, see store.Scheme.
func WithStoreDSN(dsn string) Option {
	return func(o *options) {
		o.storeDSN = dsn
	}
}

// WithSyncURL overrides the stored sync endpoint for this client.
func WithSyncURL(url string) Option {
	return func(o *options) {
		o.syncURL = url
	}
}

// WithRemote replaces the HTTP sync endpoint entirely.
func WithRemote(r syncer.Remote) Option {
	return func(o *options) {
		o.remote = r
	}
}

// WithVerifyPush reads every push back to confirm the endpoint stored it.
func WithVerifyPush(verify bool) Option {
	return func(o *options) {
		o.verifyPush = verify
	}
}

// WithHTTPClient sets the http.Client used for the sync endpoint.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithClock sets the time source for ids, timestamps and expense dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSettleDelay sets how long a finished push or pull reports its result
// before returning to idle.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) {
		o.settleDelay = d
	}
}

// WithLogger sets the logger for every component.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLive sets the live-data service. Without it weather, rate and tips
// come from the seed data.
func WithLive(svc *live.Service) Option {
	return func(o *options) {
		o.live = svc
	}
}
