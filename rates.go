package papertrade

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// defaultRateEndpoint serves the USD cross rates as a single JSON document.
const defaultRateEndpoint = "https://api.exchangerate-api.com/v4/latest/USD"

// Default rates used until a refresh succeeds. They are deliberately coarse:
// rates only affect display and aggregate reporting, never the arithmetic of
// a single-currency transaction.
var defaultRates = map[Currency]decimal.Decimal{
	USD: decimal.NewFromInt(1),
	INR: decimal.NewFromInt(83),
	MYR: decimal.NewFromFloat(4.5),
}

// RateTable stores USD cross rates (units of currency per 1 USD) and converts
// amounts between currencies for display and aggregate reporting.
//
// A trading session must never block on a rate-provider outage: Refresh is a
// single blocking call with no retry, and on any failure the table keeps its
// previous (or default) rates. The fallback is observable through Stale and a
// log event rather than fully silent.
type RateTable struct {
	endpoint string
	rates    map[Currency]decimal.Decimal
	updated  time.Time
}

// NewRateTable creates a table primed with the default rates.
func NewRateTable() *RateTable {
	rates := make(map[Currency]decimal.Decimal, len(defaultRates))
	for c, r := range defaultRates {
		rates[c] = r
	}
	return &RateTable{endpoint: defaultRateEndpoint, rates: rates}
}

// Stale reports whether the table is still running on defaults or previously
// fetched values, i.e. no refresh has succeeded yet.
func (t *RateTable) Stale() bool { return t.updated.IsZero() }

// LastUpdated returns the time of the last successful refresh, zero if none.
func (t *RateTable) LastUpdated() time.Time { return t.updated }

// Rate returns the current cross rate for a currency (units per 1 USD).
func (t *RateTable) Rate(c Currency) decimal.Decimal {
	if r, ok := t.rates[c]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

// Refresh fetches the latest USD cross rates. On any failure (transport,
// status, parse) the previous rates are retained and the failure is logged;
// no error reaches the caller and no retry is attempted.
func (t *RateTable) Refresh(client *http.Client) {
	if client == nil {
		client = http.DefaultClient
	}
	var jobj any
	if err := jwget(client, t.endpoint, &jobj); err != nil {
		log.Printf("exchange rates unavailable, keeping previous values: %v", err)
		return
	}

	fetched := make(map[Currency]decimal.Decimal, len(Currencies))
	fetched[USD] = decimal.NewFromInt(1)
	for _, c := range []Currency{INR, MYR} {
		rate, err := t.extractRate(jobj, c)
		if err != nil {
			log.Printf("exchange rates unavailable, keeping previous values: %v", err)
			return
		}
		fetched[c] = rate
	}

	t.rates = fetched
	t.updated = time.Now()
	log.Printf("exchange rates updated: 1 USD = %s INR, %s MYR", t.rates[INR], t.rates[MYR])
}

// extractRate pulls one rate out of the provider response.
func (t *RateTable) extractRate(jobj any, c Currency) (decimal.Decimal, error) {
	path := fmt.Sprintf("$.rates.%s", c)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %w", path, err)
	}
	val, ok := jval.(float64)
	if !ok || val <= 0 {
		return decimal.Zero, fmt.Errorf("error parsing %q: not a positive number: %v", path, jval)
	}
	return decimal.NewFromFloat(val), nil
}

// ToUSD converts an amount into its USD equivalent.
func (t *RateTable) ToUSD(m Money) Money {
	if m.Currency() == USD {
		return m
	}
	return M(m.Decimal().Div(t.Rate(m.Currency())), USD)
}

// FromUSD converts a USD amount into the given currency.
func (t *RateTable) FromUSD(m Money, to Currency) Money {
	if to == USD {
		return m
	}
	return M(m.Decimal().Mul(t.Rate(to)), to)
}

// Convert converts between any two currencies, pivoting through USD.
// It is used only for display and aggregate reporting.
func (t *RateTable) Convert(m Money, to Currency) Money {
	if m.Currency() == to {
		return m
	}
	return t.FromUSD(t.ToUSD(m), to)
}
