// Package live enriches the trip with current weather, the JPY to TWD rate
// and generated tips. Every lookup is cached and falls back to seed data
// when its provider fails, so callers never see a provider error.
package live

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap/internal/cache"
	"github.com/agentstation/tripmap/internal/live/weather"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/trip"
)

// WeatherSource returns current weather for a city.
type WeatherSource interface {
	Current(ctx context.Context, city trip.City) (weather.Reading, error)
}

// RateSource returns the JPY to TWD rate.
type RateSource interface {
	JPYToTWD(ctx context.Context) (float64, error)
}

// TipSource generates tips for a day.
type TipSource interface {
	Tips(ctx context.Context, day trip.DayItinerary) ([]string, error)
}

// Weather is a city's weather, live or from the seed forecast.
type Weather struct {
	City    trip.City        `json:"city"`
	Reading *weather.Reading `json:"reading,omitempty"`
	Seed    trip.WeatherData `json:"seed"`
	Live    bool             `json:"live"`
}

// Rate is the JPY to TWD exchange rate.
type Rate struct {
	JPYToTWD float64 `json:"jpyToTwd"`
	Live     bool    `json:"live"`
}

// Tips are the tips for one day.
type Tips struct {
	DayID int      `json:"dayId"`
	Tips  []string `json:"tips"`
	Live  bool     `json:"live"`
}

// Service combines the providers behind a cache.
type Service struct {
	weather WeatherSource
	rates   RateSource
	tips    TipSource
	cache   *cache.Cache
	logger  *zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithWeather sets the weather provider.
func WithWeather(w WeatherSource) Option {
	return func(s *Service) { s.weather = w }
}

// WithRates sets the exchange-rate provider.
func WithRates(r RateSource) Option {
	return func(s *Service) { s.rates = r }
}

// WithTips sets the tips provider. Without one, tips come from the seed.
func WithTips(t TipSource) Option {
	return func(s *Service) { s.tips = t }
}

// WithCache replaces the cache.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger sets the logger used for provider failures.
func WithLogger(l *zerolog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service. Providers left unset are treated as unavailable.
func New(opts ...Option) *Service {
	s := &Service{
		cache:  cache.New(constants.WeatherCacheTTL, constants.CacheCleanupInterval),
		logger: logging.Component("live"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weather returns the weather in city. The seed is the forecast of the
// first itinerary day based there.
func (s *Service) Weather(ctx context.Context, city trip.City, days []trip.DayItinerary) Weather {
	w := Weather{City: city, Seed: seedWeather(city, days)}
	if s.weather == nil {
		return w
	}
	reading, err := cache.GetOrLoad(ctx, s.cache, "weather:"+string(city), constants.WeatherCacheTTL,
		func(ctx context.Context) (weather.Reading, error) {
			return s.weather.Current(ctx, city)
		})
	if err != nil {
		s.logger.Warn().Err(err).Str("city", string(city)).Msg("weather unavailable, using seed forecast")
		return w
	}
	w.Reading = &reading
	w.Live = true
	return w
}

// Rate returns the JPY to TWD rate, or the default when it cannot be fetched.
func (s *Service) Rate(ctx context.Context) Rate {
	if s.rates == nil {
		return Rate{JPYToTWD: constants.DefaultJPYToTWD}
	}
	rate, err := cache.GetOrLoad(ctx, s.cache, "rate:JPY:TWD", constants.RateCacheTTL, s.rates.JPYToTWD)
	if err != nil {
		s.logger.Warn().Err(err).Msg("exchange rate unavailable, using default")
		return Rate{JPYToTWD: constants.DefaultJPYToTWD}
	}
	return Rate{JPYToTWD: rate, Live: true}
}

// Tips returns tips for day, or the day's seed tips.
func (s *Service) Tips(ctx context.Context, day trip.DayItinerary) Tips {
	t := Tips{DayID: day.ID, Tips: day.Weather.Tips}
	if s.tips == nil {
		return t
	}
	key := "tips:" + strconv.Itoa(day.ID) + ":" + tipsFingerprint(day)
	tips, err := cache.GetOrLoad(ctx, s.cache, key, constants.TipsCacheTTL,
		func(ctx context.Context) ([]string, error) {
			return s.tips.Tips(ctx, day)
		})
	if err != nil {
		s.logger.Warn().Err(err).Int("day", day.ID).Msg("tips unavailable, using seed tips")
		return t
	}
	t.Tips = tips
	t.Live = true
	return t
}

// Flush drops every cached value.
func (s *Service) Flush() {
	s.cache.Clear()
}

func seedWeather(city trip.City, days []trip.DayItinerary) trip.WeatherData {
	for _, d := range days {
		if d.Location == city {
			return d.Weather
		}
	}
	return trip.WeatherData{}
}

// tipsFingerprint changes when the day's schedule does, so edited days
// get fresh tips.
func tipsFingerprint(day trip.DayItinerary) string {
	h := fnv.New32a()
	for _, item := range day.Items {
		_, _ = h.Write([]byte(item.Time + "\x00" + item.Title + "\x00"))
	}
	return strconv.FormatUint(uint64(h.Sum32()), 16)
}
