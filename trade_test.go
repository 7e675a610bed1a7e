package papertrade

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestJournalIDsAreMonotonic(t *testing.T) {
	j := NewTradeJournal()
	for i := 0; i < 5; i++ {
		got := j.Append(Trade{Symbol: "AAPL", Action: ActionBuy})
		if got.ID != int64(i+1) {
			t.Errorf("trade %d got id %d", i, got.ID)
		}
	}
}

func TestJournalIDsRestartAfterClear(t *testing.T) {
	j := NewTradeJournal()
	j.Append(Trade{Symbol: "AAPL", Action: ActionBuy})
	j.Append(Trade{Symbol: "AAPL", Action: ActionSell})
	j.clear()
	got := j.Append(Trade{Symbol: "MSFT", Action: ActionBuy})
	if got.ID != 1 {
		t.Errorf("id after clear = %d, want 1", got.ID)
	}
}

func TestTradeJSONShape(t *testing.T) {
	at := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
	buy := Trade{
		ID: 1, Symbol: "AAPL", Action: ActionBuy, Shares: 10,
		Price: M(150, USD), Currency: USD, Total: M(1500, USD),
		Date: at, Confidence: 75,
		CashAfter: M(8500, USD), PortfolioValueAfter: M(10000, USD),
	}
	data, err := json.Marshal(buy)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"confidence":75`) {
		t.Errorf("BUY record should carry confidence: %s", s)
	}
	if strings.Contains(s, `"pnl"`) || strings.Contains(s, `"reason"`) {
		t.Errorf("BUY record should not carry realized fields: %s", s)
	}
	// Field order is fixed: id first, snapshots last.
	if !strings.HasPrefix(s, `{"id":1,"symbol":"AAPL","action":"BUY"`) {
		t.Errorf("unexpected field order: %s", s)
	}

	sell := buy
	sell.Action = ActionSell
	sell.CostBasis = M(750, USD)
	sell.PnL = M(50, USD)
	sell.PnLPct = 6.67
	sell.Reason = "TAKE_PROFIT"
	sell.EntryDate = at
	data, err = json.Marshal(sell)
	if err != nil {
		t.Fatal(err)
	}
	s = string(data)
	if !strings.Contains(s, `"pnl":50`) || !strings.Contains(s, `"reason":"TAKE_PROFIT"`) {
		t.Errorf("SELL record should carry realized fields: %s", s)
	}
	if strings.Contains(s, `"confidence"`) {
		t.Errorf("SELL record should not carry confidence: %s", s)
	}
}

func TestTradeJSONRoundTrip(t *testing.T) {
	p := New()
	mustBuy(t, p, BuyOrder{Symbol: "RELIANCE.NS", Price: decimal.NewFromInt(2500), Shares: 4, Confidence: 80, Time: day(1)})
	if _, err := p.Sell(SellOrder{Symbol: "RELIANCE.NS", Price: decimal.NewFromInt(2600), Time: day(3)}); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(p.state.Journal)
	if err != nil {
		t.Fatal(err)
	}
	decoded := NewTradeJournal()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Len() != 2 {
		t.Fatalf("decoded %d trades, want 2", decoded.Len())
	}
	var sells []Trade
	for s := range decoded.Sells() {
		sells = append(sells, s)
	}
	if len(sells) != 1 {
		t.Fatalf("decoded %d sells, want 1", len(sells))
	}
	if !sells[0].PnL.Equal(M(400, INR)) {
		t.Errorf("decoded pnl = %s, want ₹400.00", sells[0].PnL)
	}
	if sells[0].Currency != INR {
		t.Errorf("decoded currency = %v, want INR", sells[0].Currency)
	}
}
