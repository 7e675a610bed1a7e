package papertrade

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Derivation factors for the exit levels attached to every position. They are
// recomputed from the weighted-average price on every buy.
var (
	targetFactor   = decimal.NewFromFloat(1.10)
	stopLossFactor = decimal.NewFromFloat(0.95)
)

// Position is a single open holding. Shares is always strictly positive
// while the position exists: a position whose shares reach zero is removed
// from the book, never zeroed in place.
//
// All prices are in the position's native currency, which is fixed at
// creation and never changes.
type Position struct {
	Symbol      string
	Shares      int64
	AvgPrice    Money // weighted-average purchase price
	Currency    Currency
	Confidence  int // max confidence of all contributing buys, 0..100
	EntryDate   time.Time
	LastUpdated time.Time
	TargetPrice Money
	StopLoss    Money
	LastPrice   Money // most recent observed price, set by a market refresh
}

// newPosition opens a position from its first buy.
func newPosition(symbol string, shares int64, price Money, confidence int, at time.Time) *Position {
	return &Position{
		Symbol:      symbol,
		Shares:      shares,
		AvgPrice:    price,
		Currency:    price.Currency(),
		Confidence:  confidence,
		EntryDate:   at,
		LastUpdated: at,
		TargetPrice: price.Scale(targetFactor),
		StopLoss:    price.Scale(stopLossFactor),
		LastPrice:   price,
	}
}

// merge folds an additional buy into the position, recomputing the
// weighted-average price and the exit levels derived from it.
func (p *Position) merge(shares int64, price Money, confidence int, at time.Time) {
	combined := p.AvgPrice.MulShares(p.Shares).Add(price.MulShares(shares))
	p.Shares += shares
	p.AvgPrice = combined.DivShares(p.Shares)
	p.TargetPrice = p.AvgPrice.Scale(targetFactor)
	p.StopLoss = p.AvgPrice.Scale(stopLossFactor)
	p.LastPrice = price
	if confidence > p.Confidence {
		p.Confidence = confidence
	}
	p.LastUpdated = at
}

// CostBasis returns shares × average price for the given share count.
func (p *Position) CostBasis(shares int64) Money { return p.AvgPrice.MulShares(shares) }

// MarketValue returns the position value at the last observed price.
func (p *Position) MarketValue() Money { return p.LastPrice.MulShares(p.Shares) }

// UnrealizedPnL returns the open profit and loss at the last observed price.
func (p *Position) UnrealizedPnL() Money { return p.MarketValue().Sub(p.CostBasis(p.Shares)) }

// DaysHeld returns the whole days elapsed since the position was opened.
func (p *Position) DaysHeld(now time.Time) int { return daysBetween(p.EntryDate, now) }

// MarshalJSON implements json.Marshaler with a stable field order. The symbol
// is the key of the owning map and is not repeated inside the record.
func (p *Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("shares", p.Shares)
	w.Append("avg_price", p.AvgPrice)
	w.Append("currency", p.Currency)
	w.Append("confidence", p.Confidence)
	w.Append("entry_date", p.EntryDate.Format(time.RFC3339))
	w.Append("target_price", p.TargetPrice)
	w.Append("stop_loss_price", p.StopLoss)
	w.Append("last_price", p.LastPrice)
	w.Append("last_updated", p.LastUpdated.Format(time.RFC3339))
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler. Records written before the
// multi-currency layout carry no currency field; the book backfills it from
// the symbol once the key is known.
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw struct {
		Shares      int64           `json:"shares"`
		AvgPrice    decimal.Decimal `json:"avg_price"`
		Currency    Currency        `json:"currency"`
		Confidence  int             `json:"confidence"`
		EntryDate   time.Time       `json:"entry_date"`
		TargetPrice decimal.Decimal `json:"target_price"`
		StopLoss    decimal.Decimal `json:"stop_loss_price"`
		LastPrice   decimal.Decimal `json:"last_price"`
		LastUpdated time.Time       `json:"last_updated"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Shares = raw.Shares
	p.Currency = raw.Currency
	p.Confidence = raw.Confidence
	p.EntryDate = raw.EntryDate
	p.LastUpdated = raw.LastUpdated
	p.AvgPrice = M(raw.AvgPrice, raw.Currency)
	p.TargetPrice = M(raw.TargetPrice, raw.Currency)
	p.StopLoss = M(raw.StopLoss, raw.Currency)
	p.LastPrice = M(raw.LastPrice, raw.Currency)
	return nil
}

// setCurrency rebinds the position and its prices to a currency. Used only
// when migrating records persisted without one.
func (p *Position) setCurrency(c Currency) {
	p.Currency = c
	p.AvgPrice = M(p.AvgPrice.Decimal(), c)
	p.TargetPrice = M(p.TargetPrice.Decimal(), c)
	p.StopLoss = M(p.StopLoss.Decimal(), c)
	p.LastPrice = M(p.LastPrice.Decimal(), c)
}

// PositionBook owns the symbol→position map. All mutations go through the
// trade executor; read paths iterate in stable symbol order.
type PositionBook struct {
	positions map[string]*Position
}

// NewPositionBook creates an empty book.
func NewPositionBook() *PositionBook {
	return &PositionBook{positions: make(map[string]*Position)}
}

// Len returns the number of open positions.
func (b *PositionBook) Len() int { return len(b.positions) }

// Get returns the position for a symbol, or nil if none is open.
func (b *PositionBook) Get(symbol string) *Position { return b.positions[symbol] }

// All iterates over open positions in stable symbol order.
func (b *PositionBook) All() iter.Seq[*Position] {
	return func(yield func(*Position) bool) {
		symbols := slices.Collect(maps.Keys(b.positions))
		slices.Sort(symbols)
		for _, s := range symbols {
			if !yield(b.positions[s]) {
				return
			}
		}
	}
}

// buy opens or merges a position and returns it.
func (b *PositionBook) buy(symbol string, shares int64, price Money, confidence int, at time.Time) *Position {
	if pos, ok := b.positions[symbol]; ok {
		pos.merge(shares, price, confidence, at)
		return pos
	}
	pos := newPosition(symbol, shares, price, confidence, at)
	b.positions[symbol] = pos
	return pos
}

// reduce removes shares from a position, deleting it when the remainder is
// zero. The average price is left unchanged on a partial close. It reports
// whether the position was fully closed.
func (b *PositionBook) reduce(symbol string, shares int64, at time.Time) (closed bool) {
	pos := b.positions[symbol]
	if pos == nil {
		return false
	}
	if shares >= pos.Shares {
		delete(b.positions, symbol)
		return true
	}
	pos.Shares -= shares
	pos.LastUpdated = at
	return false
}

// ValueIn returns the total market value of positions quoted in the given
// currency. Positions in other currencies never contribute: currencies are
// not mixed.
func (b *PositionBook) ValueIn(c Currency) Money {
	total := M(0, c)
	for _, pos := range b.positions {
		if pos.Currency == c {
			total = total.Add(pos.MarketValue())
		}
	}
	return total
}

// CountIn returns the number of open positions quoted in the given currency.
func (b *PositionBook) CountIn(c Currency) int {
	n := 0
	for _, pos := range b.positions {
		if pos.Currency == c {
			n++
		}
	}
	return n
}

// clear drops every position.
func (b *PositionBook) clear() { b.positions = make(map[string]*Position) }

// MarshalJSON implements json.Marshaler keyed by symbol, in symbol order.
func (b *PositionBook) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for pos := range b.All() {
		w.Append(pos.Symbol, pos)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler, backfilling the native currency
// on records persisted before the multi-currency layout.
func (b *PositionBook) UnmarshalJSON(data []byte) error {
	var raw map[string]*Position
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.positions = make(map[string]*Position, len(raw))
	for symbol, pos := range raw {
		pos.Symbol = symbol
		if pos.Currency == "" {
			pos.setCurrency(ClassifySymbol(symbol))
		}
		b.positions[symbol] = pos
	}
	return nil
}
