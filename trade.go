package papertrade

import (
	"encoding/json"
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

// Action is the side of an executed trade.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// Trade is one immutable journal record. The snapshot fields CashAfter and
// PortfolioValueAfter are captured at execution time in the trade's native
// currency and are never recomputed retroactively.
//
// The realized fields (CostBasis, PnL, PnLPct, HoldingDays, Reason,
// EntryDate) are only meaningful on SELL records.
type Trade struct {
	ID       int64
	Symbol   string
	Action   Action
	Shares   int64
	Price    Money // native currency
	Currency Currency
	Total    Money // shares × price, native currency
	Date     time.Time

	Confidence int // buy only: signal confidence, 0..100

	CostBasis   Money
	PnL         Money
	PnLPct      Percent
	HoldingDays int
	Reason      string
	EntryDate   time.Time

	CashAfter           Money
	PortfolioValueAfter Money
}

// IsWin reports whether a SELL trade realized a strictly positive P&L.
func (t Trade) IsWin() bool { return t.Action == ActionSell && t.PnL.IsPositive() }

// MarshalJSON implements json.Marshaler with a stable field order; the
// realized fields are emitted only on SELL records.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("symbol", t.Symbol)
	w.Append("action", t.Action)
	w.Append("shares", t.Shares)
	w.Append("price", t.Price)
	w.Append("currency", t.Currency)
	w.Append("total", t.Total)
	w.Append("date", t.Date.Format(time.RFC3339))
	if t.Action == ActionBuy {
		w.Append("confidence", t.Confidence)
	}
	if t.Action == ActionSell {
		w.Append("cost_basis", t.CostBasis)
		w.Append("pnl", t.PnL)
		w.Append("pnl_pct", float64(t.PnLPct))
		w.Append("holding_days", t.HoldingDays)
		w.Append("reason", t.Reason)
		w.Append("entry_date", t.EntryDate.Format(time.RFC3339))
	}
	w.Append("cash_after", t.CashAfter)
	w.Append("portfolio_value_after", t.PortfolioValueAfter)
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler. Records persisted before the
// multi-currency layout carry no currency field; it is rebuilt from the
// symbol.
func (t *Trade) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                  int64           `json:"id"`
		Symbol              string          `json:"symbol"`
		Action              Action          `json:"action"`
		Shares              int64           `json:"shares"`
		Price               decimal.Decimal `json:"price"`
		Currency            Currency        `json:"currency"`
		Total               decimal.Decimal `json:"total"`
		Date                time.Time       `json:"date"`
		Confidence          int             `json:"confidence"`
		CostBasis           decimal.Decimal `json:"cost_basis"`
		PnL                 decimal.Decimal `json:"pnl"`
		PnLPct              float64         `json:"pnl_pct"`
		HoldingDays         int             `json:"holding_days"`
		Reason              string          `json:"reason"`
		EntryDate           time.Time       `json:"entry_date"`
		CashAfter           decimal.Decimal `json:"cash_after"`
		PortfolioValueAfter decimal.Decimal `json:"portfolio_value_after"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	currency := raw.Currency
	if currency == "" {
		currency = ClassifySymbol(raw.Symbol)
	}
	t.ID = raw.ID
	t.Symbol = raw.Symbol
	t.Action = raw.Action
	t.Shares = raw.Shares
	t.Price = M(raw.Price, currency)
	t.Currency = currency
	t.Total = M(raw.Total, currency)
	t.Date = raw.Date
	t.Confidence = raw.Confidence
	t.CostBasis = M(raw.CostBasis, currency)
	t.PnL = M(raw.PnL, currency)
	t.PnLPct = Percent(raw.PnLPct)
	t.HoldingDays = raw.HoldingDays
	t.Reason = raw.Reason
	t.EntryDate = raw.EntryDate
	t.CashAfter = M(raw.CashAfter, currency)
	t.PortfolioValueAfter = M(raw.PortfolioValueAfter, currency)
	return nil
}

// TradeJournal is the append-only record of executed trades. Records are
// totally ordered by insertion and identified by a strictly increasing id;
// no reordering or compaction ever occurs.
type TradeJournal struct {
	trades []Trade
}

// NewTradeJournal creates an empty journal.
func NewTradeJournal() *TradeJournal { return &TradeJournal{} }

// Len returns the number of recorded trades.
func (j *TradeJournal) Len() int { return len(j.trades) }

// Append assigns the next id to the trade and records it. The assigned
// record is returned.
func (j *TradeJournal) Append(t Trade) Trade {
	t.ID = j.nextID()
	j.trades = append(j.trades, t)
	return t
}

func (j *TradeJournal) nextID() int64 {
	if len(j.trades) == 0 {
		return 1
	}
	return j.trades[len(j.trades)-1].ID + 1
}

// All iterates over trades in insertion order.
func (j *TradeJournal) All() iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for _, t := range j.trades {
			if !yield(t) {
				return
			}
		}
	}
}

// Sells iterates over SELL trades in insertion order. Performance statistics
// are computed over this subset only.
func (j *TradeJournal) Sells() iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for _, t := range j.trades {
			if t.Action != ActionSell {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// clear drops the whole history.
func (j *TradeJournal) clear() { j.trades = nil }

// MarshalJSON implements json.Marshaler as a flat array in insertion order.
func (j *TradeJournal) MarshalJSON() ([]byte, error) {
	if j.trades == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(j.trades)
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *TradeJournal) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &j.trades)
}
