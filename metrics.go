package papertrade

import (
	"github.com/shopspring/decimal"
)

// CurrencyMetrics are the performance figures of one currency lane. Every
// amount is in that currency; lanes never mix.
type CurrencyMetrics struct {
	Currency       Currency
	Cash           Money
	PositionsValue Money
	TotalValue     Money
	InitialCapital Money
	Return         Money
	ReturnPct      Percent
	OpenPositions  int
}

// Metrics aggregates the portfolio performance: one lane per currency, plus
// USD-equivalent totals and trade statistics computed over completed (SELL)
// trades only. Open positions contribute nothing to the trade statistics.
type Metrics struct {
	PerCurrency []CurrencyMetrics

	// USD-equivalent aggregates, converted at the current rate table.
	TotalValueUSD     Money
	InitialCapitalUSD Money
	TotalReturnUSD    Money
	TotalReturnPct    Percent
	RatesStale        bool

	TotalTrades     int // all journal records, buys included
	CompletedTrades int // SELL records
	Wins            int // completed trades with strictly positive P&L
	Losses          int
	WinRate         Percent
	AvgWin          Percent // mean realized P&L % over winning trades
	AvgLoss         Percent // mean realized P&L % over losing trades
	BestTrade       *Trade  // highest realized P&L %
	WorstTrade      *Trade  // lowest realized P&L %

	// MaxDrawdown is the largest peak-to-trough decline of the
	// USD-equivalent daily value series, as a percentage of the peak.
	MaxDrawdown Percent
}

// ComputeMetrics derives the full performance picture from the current state
// and the rate table. It never mutates state.
func (p *Portfolio) ComputeMetrics() *Metrics {
	m := &Metrics{RatesStale: p.rates.Stale()}

	totalUSD := M(0, USD)
	initialUSD := M(0, USD)
	for _, c := range Currencies {
		cash := p.state.Cash.Balance(c)
		positions := p.state.Positions.ValueIn(c)
		total := cash.Add(positions)
		initial := M(p.state.InitialCapital.Get(c), c)
		ret := total.Sub(initial)
		m.PerCurrency = append(m.PerCurrency, CurrencyMetrics{
			Currency:       c,
			Cash:           cash,
			PositionsValue: positions,
			TotalValue:     total,
			InitialCapital: initial,
			Return:         ret,
			ReturnPct:      ret.PctOf(initial),
			OpenPositions:  p.state.Positions.CountIn(c),
		})
		totalUSD = totalUSD.Add(p.rates.ToUSD(total))
		initialUSD = initialUSD.Add(p.rates.ToUSD(initial))
	}
	m.TotalValueUSD = totalUSD
	m.InitialCapitalUSD = initialUSD
	m.TotalReturnUSD = totalUSD.Sub(initialUSD)
	m.TotalReturnPct = m.TotalReturnUSD.PctOf(initialUSD)

	m.TotalTrades = p.state.Journal.Len()
	p.tradeStats(m)
	m.MaxDrawdown = p.maxDrawdown()
	return m
}

// tradeStats compares trades by their realized percentage so that lanes in
// different currencies remain comparable without a rate conversion.
func (p *Portfolio) tradeStats(m *Metrics) {
	var winSum, lossSum Percent
	for t := range p.state.Journal.Sells() {
		m.CompletedTrades++
		if t.IsWin() {
			m.Wins++
			winSum += t.PnLPct
		} else {
			m.Losses++
			lossSum += t.PnLPct
		}
		if m.BestTrade == nil || t.PnLPct > m.BestTrade.PnLPct {
			best := t
			m.BestTrade = &best
		}
		if m.WorstTrade == nil || t.PnLPct < m.WorstTrade.PnLPct {
			worst := t
			m.WorstTrade = &worst
		}
	}
	if m.CompletedTrades > 0 {
		m.WinRate = Percent(float64(m.Wins) / float64(m.CompletedTrades) * 100)
	}
	if m.Wins > 0 {
		m.AvgWin = winSum / Percent(m.Wins)
	}
	if m.Losses > 0 {
		m.AvgLoss = lossSum / Percent(m.Losses)
	}
}

// maxDrawdown scans the daily value series in recorded order, converting each
// snapshot to its USD equivalent at the current rates, and tracks the largest
// percentage drop from the running peak. Fewer than two snapshots yield zero.
func (p *Portfolio) maxDrawdown() Percent {
	if len(p.state.DailyValues) < 2 {
		return 0
	}
	var peak decimal.Decimal
	var worst float64
	for _, snap := range p.state.DailyValues {
		value := p.snapshotUSD(snap)
		if value.GreaterThan(peak) {
			peak = value
			continue
		}
		if !peak.IsPositive() {
			continue
		}
		drop, _ := peak.Sub(value).Div(peak).Mul(decimal.NewFromInt(100)).Float64()
		if drop > worst {
			worst = drop
		}
	}
	return Percent(worst)
}

func (p *Portfolio) snapshotUSD(snap DailySnapshot) decimal.Decimal {
	total := decimal.Zero
	for _, c := range Currencies {
		total = total.Add(p.rates.ToUSD(M(snap.Value.Get(c), c)).Decimal())
	}
	return total
}
