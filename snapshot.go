package papertrade

import (
	"encoding/json"
	"log"

	"github.com/shopspring/decimal"
)

// DailySnapshot captures the portfolio value and cash per currency at the end
// of one day. The series feeds the drawdown analysis; a second snapshot taken
// on the same day overwrites the first in place.
type DailySnapshot struct {
	Date  Date
	Value CurrencyAmounts
	Cash  CurrencyAmounts
}

// MarshalJSON implements json.Marshaler with a stable field order.
func (s DailySnapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", s.Date)
	w.Append("value", s.Value)
	w.Append("cash", s.Cash)
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *DailySnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date  Date            `json:"date"`
		Value CurrencyAmounts `json:"value"`
		Cash  CurrencyAmounts `json:"cash"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Date, s.Value, s.Cash = raw.Date, raw.Value, raw.Cash
	return nil
}

// Quoter provides a live price for a symbol, in the symbol's native
// currency. It is an external collaborator of the ledger: lookups are
// synchronous, and a failed lookup is skipped rather than surfaced.
type Quoter interface {
	Quote(symbol string) (decimal.Decimal, error)
}

// RefreshPositions updates every position's last observed price from the
// quoter and records today's valuation snapshot. Provider failures are
// logged and the previous price is retained; only a persistence failure is
// returned.
func (p *Portfolio) RefreshPositions(q Quoter) error {
	for pos := range p.state.Positions.All() {
		price, err := q.Quote(pos.Symbol)
		if err != nil {
			log.Printf("quote unavailable for %s, keeping last price: %v", pos.Symbol, err)
			continue
		}
		if price.IsPositive() {
			pos.LastPrice = M(price, pos.Currency)
		}
	}
	return p.RecordDailyValue(Today())
}

// RecordDailyValue captures the per-currency portfolio value and cash for
// the given day. A snapshot already recorded for that day is overwritten.
func (p *Portfolio) RecordDailyValue(on Date) error {
	snap := DailySnapshot{
		Date:  on,
		Value: p.Values(),
		Cash:  p.state.Cash.Amounts(),
	}
	replaced := false
	for i := range p.state.DailyValues {
		if p.state.DailyValues[i].Date == on {
			p.state.DailyValues[i] = snap
			replaced = true
			break
		}
	}
	if !replaced {
		p.state.DailyValues = append(p.state.DailyValues, snap)
	}
	return p.persist()
}
