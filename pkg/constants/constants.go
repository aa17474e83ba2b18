// Package constants provides shared constants used throughout tripmap:
// storage keys, remote endpoints, defaults, timeouts and permissions.
package constants

import "time"

// Storage keys, one document per collection. The names match what earlier
// versions of the app wrote so existing data keeps loading.
const (
	KeyItinerary           = "kansai_itinerary_v1"
	KeyFlights             = "kansai_flights_v1"
	KeyExpenses            = "kansai_expenses_v1"
	KeyChecklist           = "kansai_checklist_v1" // checked-state
	KeyChecklistCategories = "kansai_checklist_categories_v1"
	KeyCoupons             = "kansai_coupons_v1"
	KeyShoppingItems       = "kansai_shopping_items_v1"
	KeyShoppingTypes       = "kansai_shopping_types_v1"
	KeySyncURL             = "kansai_gas_url_v1"

	// KeyRelay holds the last payload pushed to this server's relay endpoint.
	KeyRelay = "tripmap_relay_v1"
)

// Remote endpoints.
const (
	// DefaultSyncURL is the preset spreadsheet web app used for push/pull.
	DefaultSyncURL = "https://script.google.com/macros/s/AKfycbxHpkOIkd9KFmi9kTucFpYraFfzQqY86NrDQ0UwI9zoCwp5hBlPOmDuz5RYvCPejDbaGg/exec"

	// WeatherAPIURL is the open-meteo forecast endpoint.
	WeatherAPIURL = "https://api.open-meteo.com/v1/forecast"

	// ExchangeRateAPIURL returns JPY-based rates.
	ExchangeRateAPIURL = "https://open.er-api.com/v6/latest/JPY"
)

// Domain defaults.
const (
	// DefaultJPYToTWD is used when the exchange rate cannot be fetched.
	DefaultJPYToTWD = 0.21

	// FallbackShoppingType is the shopping type that can never be deleted.
	FallbackShoppingType = "其他"

	// UnknownWeatherCondition labels weather codes missing from the code table.
	UnknownWeatherCondition = "未知狀況"

	// DefaultAdvisorModel is the text-generation model used for travel tips.
	DefaultAdvisorModel = "gemini-2.0-flash"

	// DefaultStoreDSN is where the CLI keeps the trip when no store is configured.
	DefaultStoreDSN = "file://~/.tripmap/data"

	// EnvPrefix prefixes every tripmap environment variable.
	EnvPrefix = "TRIPMAP"
)

// Timeouts.
const (
	// DefaultHTTPTimeout bounds every call to a remote endpoint.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations.
	DefaultTimeout = 10 * time.Second

	// SyncSettleDelay is how long a finished push/pull stays in success or
	// error before the status returns to idle.
	SyncSettleDelay = 3 * time.Second

	// StoreOpenTimeout bounds connecting to a networked store backend.
	StoreOpenTimeout = 10 * time.Second
)

// Cache TTLs for live data.
const (
	WeatherCacheTTL = 15 * time.Minute
	RateCacheTTL    = 1 * time.Hour
	TipsCacheTTL    = 6 * time.Hour

	CacheCleanupInterval = 10 * time.Minute
)

// File permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x).
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--).
	FilePermissions = 0644

	// SecureFilePermissions is for data files that may hold personal notes (rw-------).
	SecureFilePermissions = 0600
)

// Server limits.
const (
	// MaxRequestBodyBytes caps request bodies; photos travel as data URLs.
	MaxRequestBodyBytes = 16 << 20

	// MaxResponseBodyBytes caps bodies read from remote services. A relay
	// answer wraps a payload that fit under MaxRequestBodyBytes.
	MaxResponseBodyBytes = 32 << 20

	// DefaultRateLimit is requests per minute per client.
	DefaultRateLimit = 120

	// BurstSize is the token bucket burst size for rate limiting.
	BurstSize = 20
)
