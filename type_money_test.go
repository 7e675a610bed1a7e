package papertrade

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{M(1500, USD), "$1,500.00"},
		{M(decimal.NewFromFloat(1234.5), USD), "$1,234.50"},
		{M(100000, INR), "₹100,000.00"},
		{M(10000, MYR), "RM10,000.00"},
		{M(0, USD), "$0.00"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMoneyExactRoundTrip(t *testing.T) {
	// A buy-then-sell round trip at the same price nets exactly zero.
	price := M(decimal.RequireFromString("150.33"), USD)
	cost := price.MulShares(7)
	proceeds := price.MulShares(7)
	if pnl := proceeds.Sub(cost); !pnl.IsZero() {
		t.Errorf("round trip P&L = %s, want zero", pnl.Decimal())
	}
}

func TestMoneyCurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding USD to INR should panic")
		}
	}()
	M(1, USD).Add(M(1, INR))
}

func TestMoneyPctOf(t *testing.T) {
	pnl := M(150, USD)
	cost := M(1500, USD)
	if got := pnl.PctOf(cost); !got.Equal(10) {
		t.Errorf("PctOf = %v, want 10", got)
	}
	if got := M(5, USD).PctOf(M(0, USD)); got != 0 {
		t.Errorf("PctOf zero base = %v, want 0", got)
	}
}
