package papertrade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestComputeMetricsTradeStats(t *testing.T) {
	p := New()
	// Two completed round trips: one win (+$100), one loss (-$50).
	mustBuy(t, p, BuyOrder{Symbol: "AAPL", Price: decimal.NewFromInt(100), Shares: 10, Confidence: 75, Time: day(1)})
	if _, err := p.Sell(SellOrder{Symbol: "AAPL", Price: decimal.NewFromInt(110), Time: day(2)}); err != nil {
		t.Fatal(err)
	}
	mustBuy(t, p, BuyOrder{Symbol: "MSFT", Price: decimal.NewFromInt(50), Shares: 10, Confidence: 75, Time: day(3)})
	if _, err := p.Sell(SellOrder{Symbol: "MSFT", Price: decimal.NewFromInt(45), Time: day(4)}); err != nil {
		t.Fatal(err)
	}
	// An open position must not count as a completed trade.
	mustBuy(t, p, BuyOrder{Symbol: "GOOG", Price: decimal.NewFromInt(10), Shares: 1, Confidence: 75, Time: day(5)})

	m := p.ComputeMetrics()
	if m.TotalTrades != 5 {
		t.Errorf("total trades = %d, want 5", m.TotalTrades)
	}
	if m.CompletedTrades != 2 || m.Wins != 1 || m.Losses != 1 {
		t.Errorf("completed/wins/losses = %d/%d/%d, want 2/1/1", m.CompletedTrades, m.Wins, m.Losses)
	}
	if !m.WinRate.Equal(50) {
		t.Errorf("win rate = %v, want 50%%", m.WinRate)
	}
	// The win realized +10% on its cost, the loss -10%.
	if !m.AvgWin.Equal(10) {
		t.Errorf("avg win = %v, want 10%%", m.AvgWin)
	}
	if !m.AvgLoss.Equal(-10) {
		t.Errorf("avg loss = %v, want -10%%", m.AvgLoss)
	}
	if m.BestTrade == nil || m.BestTrade.Symbol != "AAPL" {
		t.Error("best trade should be the AAPL win")
	}
	if m.WorstTrade == nil || m.WorstTrade.Symbol != "MSFT" {
		t.Error("worst trade should be the MSFT loss")
	}
	// Net +$50 on the USD lane.
	usd := m.PerCurrency[0]
	if usd.Currency != USD || !usd.Return.Equal(M(50, USD)) {
		t.Errorf("USD return = %s, want $50.00", usd.Return)
	}
}

func TestComputeMetricsBreakEvenSellIsALoss(t *testing.T) {
	p := New()
	mustBuy(t, p, BuyOrder{Symbol: "AAPL", Price: decimal.NewFromInt(100), Shares: 10, Confidence: 75, Time: day(1)})
	if _, err := p.Sell(SellOrder{Symbol: "AAPL", Price: decimal.NewFromInt(100), Time: day(2)}); err != nil {
		t.Fatal(err)
	}
	m := p.ComputeMetrics()
	if m.Wins != 0 || m.Losses != 1 {
		t.Errorf("wins/losses = %d/%d, a zero-P&L sell counts as a loss", m.Wins, m.Losses)
	}
}

func TestComputeMetricsUSDEquivalentTotals(t *testing.T) {
	// At the default rates: $10,000 + ₹100,000/83 + RM10,000/4.5.
	p := New()
	m := p.ComputeMetrics()
	want := decimal.NewFromInt(10000).
		Add(decimal.NewFromInt(100000).Div(decimal.NewFromInt(83))).
		Add(decimal.NewFromInt(10000).Div(decimal.NewFromFloat(4.5)))
	if !m.TotalValueUSD.Decimal().Equal(want) {
		t.Errorf("total USD = %s, want %s", m.TotalValueUSD.Decimal(), want)
	}
	if !m.TotalReturnUSD.IsZero() {
		t.Errorf("return on a fresh portfolio = %s, want zero", m.TotalReturnUSD)
	}
	if !m.RatesStale {
		t.Error("a never-refreshed rate table is stale")
	}
}

func TestMaxDrawdown(t *testing.T) {
	snapshots := func(values ...int64) []DailySnapshot {
		var out []DailySnapshot
		for i, v := range values {
			amounts := NewCurrencyAmounts()
			amounts[USD] = decimal.NewFromInt(v)
			out = append(out, DailySnapshot{
				Date:  NewDate(2026, time.March, 1+i),
				Value: amounts,
			})
		}
		return out
	}
	tests := []struct {
		name   string
		values []int64
		want   Percent
	}{
		{"empty", nil, 0},
		{"single point", []int64{10000}, 0},
		{"monotonic rise", []int64{10000, 10500, 11000}, 0},
		{"single dip", []int64{10000, 9000, 10000}, 10},
		{"deepest trough wins", []int64{10000, 9500, 12000, 9000, 11000}, 25},
		{"decline never recovers", []int64{10000, 8000, 6000}, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.state.DailyValues = snapshots(tt.values...)
			if got := p.maxDrawdown(); !got.Equal(tt.want) {
				t.Errorf("maxDrawdown = %v, want %v", got, tt.want)
			}
		})
	}
}
