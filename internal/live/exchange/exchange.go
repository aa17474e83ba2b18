// Package exchange fetches the JPY to TWD exchange rate.
package exchange

import (
	"context"

	"github.com/agentstation/tripmap/internal/transport"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
)

type latest struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Client queries the exchange-rate API.
type Client struct {
	http *transport.Client
	url  string
}

// New creates a client. An empty url uses the public JPY endpoint.
func New(url string, opts ...transport.Option) *Client {
	if url == "" {
		url = constants.ExchangeRateAPIURL
	}
	return &Client{http: transport.New("open.er-api", opts...), url: url}
}

// JPYToTWD returns how many TWD one JPY buys.
func (c *Client) JPYToTWD(ctx context.Context) (float64, error) {
	var l latest
	if err := c.http.GetJSON(ctx, c.url, &l); err != nil {
		return 0, err
	}
	if l.Result == "error" {
		return 0, errors.NewAPIError("open.er-api", 0, "rate lookup failed")
	}
	rate, ok := l.Rates["TWD"]
	if !ok || rate <= 0 {
		return 0, errors.NewParseError("json", "open.er-api response", "no TWD rate", nil)
	}
	return rate, nil
}
