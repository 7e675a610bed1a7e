package papertrade

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in one of the supported currencies.
//
// The amount is kept as an exact decimal so that cost-basis arithmetic is
// currency-exact: a buy-then-sell round trip at the same price always nets a
// zero profit and loss.
type Money struct {
	value decimal.Decimal // major unit value
	cur   Currency
}

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// M creates a Money value in the given currency.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency Currency) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func (m Money) Currency() Currency { return m.cur }

// Decimal returns the exact amount in major units.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

// MulShares scales a per-share price by a share count.
func (m Money) MulShares(n int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(n)), cur: m.cur}
}

// DivShares divides a total amount by a share count (weighted-average cost).
func (m Money) DivShares(n int64) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(n)), cur: m.cur}
}

// Scale multiplies the amount by an exact decimal factor (target and
// stop-loss derivation).
func (m Money) Scale(f decimal.Decimal) Money {
	return Money{value: m.value.Mul(f), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// PctOf returns m as a percentage of base (realized P&L percentage).
func (m Money) PctOf(base Money) Percent {
	if base.IsZero() {
		return 0
	}
	return Percent(m.value.Div(base.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// cur makes the "" currency totally weak, and panics on a genuine mismatch:
// mixing currencies inside one operation is a programming error, not a
// recoverable condition.
func cur(a, b Money) Currency {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + string(a.cur) + " != " + string(b.cur))
	}
	return a.cur
}

// String formats the amount with its fixed currency symbol prefix
// ($, ₹ or RM), using the currency's display metadata.
func (m Money) String() string {
	c := money.GetCurrency(string(m.cur))
	if c == nil {
		return m.value.StringFixed(2)
	}
	shifted := m.value.Shift(int32(c.Fraction)).Round(0)
	return c.Formatter().Format(shifted.IntPart())
}

// SignedString is like String with an explicit sign; zero renders as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON encodes the bare amount; the currency is persisted as a
// separate field by the owning record.
func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }
