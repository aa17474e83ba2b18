// Package weather fetches current conditions from open-meteo.
package weather

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/agentstation/tripmap/internal/transport"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Conditions maps WMO weather codes to display text.
var Conditions = map[int]string{
	0:  "晴朗無雲",
	1:  "主要晴朗",
	2:  "部分有雲",
	3:  "多雲",
	45: "霧",
	48: "霧淞",
	51: "小毛毛雨",
	53: "毛毛雨",
	55: "大毛毛雨",
	61: "小雨",
	63: "雨",
	65: "大雨",
	71: "小雪",
	73: "雪",
	75: "大雪",
	80: "陣雨",
	81: "大陣雨",
	82: "劇烈陣雨",
	95: "雷雨",
}

// Condition returns the display text for a WMO code.
func Condition(code int) string {
	if c, ok := Conditions[code]; ok {
		return c
	}
	return constants.UnknownWeatherCondition
}

// Reading is the current weather in a city.
type Reading struct {
	City         trip.City `json:"city"`
	TemperatureC float64   `json:"temperatureC"`
	Code         int       `json:"code"`
	Condition    string    `json:"condition"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

type forecast struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Client queries the forecast API.
type Client struct {
	http    *transport.Client
	baseURL string
	now     func() time.Time
}

// New creates a client. An empty baseURL uses the public endpoint.
func New(baseURL string, opts ...transport.Option) *Client {
	if baseURL == "" {
		baseURL = constants.WeatherAPIURL
	}
	return &Client{
		http:    transport.New("open-meteo", opts...),
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Current returns the current weather in city.
func (c *Client) Current(ctx context.Context, city trip.City) (Reading, error) {
	coords, ok := trip.CityCoordinates[city]
	if !ok {
		return Reading{}, errors.NewValidationError("city", city, "unknown city")
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Lng, 'f', -1, 64))
	q.Set("current_weather", "true")

	var f forecast
	if err := c.http.GetJSON(ctx, c.baseURL+"?"+q.Encode(), &f); err != nil {
		return Reading{}, err
	}
	if f.CurrentWeather == nil {
		return Reading{}, errors.NewParseError("json", "open-meteo response", "missing current_weather", nil)
	}

	return Reading{
		City:         city,
		TemperatureC: f.CurrentWeather.Temperature,
		Code:         f.CurrentWeather.WeatherCode,
		Condition:    Condition(f.CurrentWeather.WeatherCode),
		FetchedAt:    c.now(),
	}, nil
}
