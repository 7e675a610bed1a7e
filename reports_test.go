package papertrade

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestUnrealizedPositionsOrderedByMagnitude(t *testing.T) {
	p := New()
	mustBuy(t, p, BuyOrder{Symbol: "AAPL", Price: decimal.NewFromInt(100), Shares: 10, Confidence: 75, Time: day(1)})
	mustBuy(t, p, BuyOrder{Symbol: "MSFT", Price: decimal.NewFromInt(100), Shares: 5, Confidence: 75, Time: day(1)})
	mustBuy(t, p, BuyOrder{Symbol: "GOOG", Price: decimal.NewFromInt(100), Shares: 5, Confidence: 75, Time: day(1)})

	// AAPL +2%, MSFT -20%, GOOG +5%.
	p.Position("AAPL").LastPrice = M(102, USD)
	p.Position("MSFT").LastPrice = M(80, USD)
	p.Position("GOOG").LastPrice = M(105, USD)

	reports := p.UnrealizedPositions()
	if len(reports) != 3 {
		t.Fatalf("reports = %d, want 3", len(reports))
	}
	// Sorted by |P&L %|: the 20% loser first, then the 5% and 2% winners.
	want := []string{"MSFT", "GOOG", "AAPL"}
	for i, symbol := range want {
		if reports[i].Symbol != symbol {
			t.Errorf("reports[%d] = %s, want %s", i, reports[i].Symbol, symbol)
		}
	}
	if !reports[0].UnrealizedPnL.Equal(M(-100, USD)) {
		t.Errorf("MSFT pnl = %s, want -$100.00", reports[0].UnrealizedPnL)
	}
	if !reports[0].UnrealizedPct.Equal(-20) {
		t.Errorf("MSFT pnl pct = %v, want -20%%", reports[0].UnrealizedPct)
	}
}

func TestUnrealizedPositionsEmpty(t *testing.T) {
	if got := New().UnrealizedPositions(); len(got) != 0 {
		t.Errorf("reports on an empty book = %d, want 0", len(got))
	}
}
