// Package quote fetches live market prices from the Yahoo Finance chart API.
// Prices come back in the instrument's native trading currency, which is
// exactly what the single-currency ledger arithmetic expects.
package quote

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches quotes over HTTP. It is safe for sequential reuse; the
// ledger's refresh loop issues one request per open position.
type Client struct {
	rest *resty.Client
}

// New creates a client against the public Yahoo Finance endpoint.
func New() *Client {
	rest := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; papertrade)")
	return &Client{rest: rest}
}

// SetBaseURL redirects the client to another endpoint.
func (c *Client) SetBaseURL(url string) { c.rest.SetBaseURL(url) }

// chartResponse is the subset of the chart document the client reads.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				Currency           string  `json:"currency"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quote returns the regular market price for a symbol in its native trading
// currency.
func (c *Client) Quote(symbol string) (decimal.Decimal, error) {
	var doc chartResponse
	resp, err := c.rest.R().
		SetResult(&doc).
		SetPathParam("symbol", symbol).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot fetch quote for %q: %w", symbol, err)
	}
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("cannot fetch quote for %q: %s", symbol, resp.Status())
	}
	if doc.Chart.Error != nil {
		return decimal.Zero, fmt.Errorf("cannot fetch quote for %q: %s: %s", symbol, doc.Chart.Error.Code, doc.Chart.Error.Description)
	}
	if len(doc.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("cannot fetch quote for %q: empty result", symbol)
	}
	price := doc.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return decimal.Zero, fmt.Errorf("cannot fetch quote for %q: no market price", symbol)
	}
	return decimal.NewFromFloat(price), nil
}
