package papertrade

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Exit reasons attached to advisory sell signals and journal records.
const (
	ReasonStopLoss   = "STOP_LOSS"
	ReasonTakeProfit = "TAKE_PROFIT"
	ReasonSignal     = "SIGNAL"
)

// ShouldSell evaluates a current price against the position's exit levels.
// It is purely advisory: the caller decides whether to place the sell order.
// It returns true with ReasonStopLoss when the price is at or below the
// stop, or ReasonTakeProfit when the price is at or above the target.
func (p *Portfolio) ShouldSell(symbol string, price decimal.Decimal) (bool, string) {
	pos := p.state.Positions.Get(symbol)
	if pos == nil || !price.IsPositive() {
		return false, ""
	}
	current := M(price, pos.Currency)
	if !current.GreaterThan(pos.StopLoss) {
		return true, ReasonStopLoss
	}
	if current.GreaterThanOrEqual(pos.TargetPrice) {
		return true, ReasonTakeProfit
	}
	return false, ""
}

// PositionReport is the display view of one open position, valued at the
// last observed price.
type PositionReport struct {
	Symbol        string
	Shares        int64
	Currency      Currency
	AvgPrice      Money
	LastPrice     Money
	CostBasis     Money
	MarketValue   Money
	UnrealizedPnL Money
	UnrealizedPct Percent
	DaysHeld      int
	Confidence    int
	TargetPrice   Money
	StopLoss      Money
}

// UnrealizedPositions reports every open position, ordered by the magnitude
// of its unrealized P&L percentage so the biggest movers, up or down, come
// first. Ties break on symbol.
func (p *Portfolio) UnrealizedPositions() []PositionReport {
	now := time.Now()
	reports := make([]PositionReport, 0, p.state.Positions.Len())
	for pos := range p.state.Positions.All() {
		cost := pos.CostBasis(pos.Shares)
		pnl := pos.UnrealizedPnL()
		reports = append(reports, PositionReport{
			Symbol:        pos.Symbol,
			Shares:        pos.Shares,
			Currency:      pos.Currency,
			AvgPrice:      pos.AvgPrice,
			LastPrice:     pos.LastPrice,
			CostBasis:     cost,
			MarketValue:   pos.MarketValue(),
			UnrealizedPnL: pnl,
			UnrealizedPct: pnl.PctOf(cost),
			DaysHeld:      pos.DaysHeld(now),
			Confidence:    pos.Confidence,
			TargetPrice:   pos.TargetPrice,
			StopLoss:      pos.StopLoss,
		})
	}
	slices.SortStableFunc(reports, func(a, b PositionReport) int {
		am, bm := a.UnrealizedPct.Abs(), b.UnrealizedPct.Abs()
		switch {
		case am > bm:
			return -1
		case am < bm:
			return 1
		default:
			return 0
		}
	})
	return reports
}
