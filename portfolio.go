package papertrade

import (
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio binds the in-memory state to its storage location and rate
// table. Every buy, sell, or admin operation is a synchronous call that
// validates against in-memory state, mutates it, then flushes the whole
// state to storage before returning.
//
// There is no internal locking: the model is a single active writer, and
// multi-writer adopters must serialize access externally.
type Portfolio struct {
	state *State
	rates *RateTable
	path  string // state file; empty keeps the portfolio in memory only
}

// New creates a fresh, in-memory portfolio with first-run defaults.
func New() *Portfolio {
	return &Portfolio{state: NewState(time.Now()), rates: NewRateTable()}
}

// Open loads the portfolio stored at path, migrating legacy layouts if
// needed. A missing file yields first-run defaults.
func Open(path string) (*Portfolio, error) {
	state, err := LoadState(path)
	if err != nil {
		return nil, err
	}
	return &Portfolio{state: state, rates: NewRateTable(), path: path}, nil
}

// Save flushes the whole state to the portfolio's file.
func (p *Portfolio) Save() error { return p.persist() }

func (p *Portfolio) persist() error {
	if p.path == "" {
		return nil
	}
	return SaveState(p.path, p.state)
}

// RefreshRates refreshes the exchange-rate table; failures keep the previous
// rates (see RateTable.Refresh).
func (p *Portfolio) RefreshRates(client *http.Client) { p.rates.Refresh(client) }

// Rates exposes the conversion table for display and aggregate reporting.
func (p *Portfolio) Rates() *RateTable { return p.rates }

// Settings returns the current executor settings.
func (p *Portfolio) Settings() Settings { return p.state.Settings }

// Cash returns the cash balance for a currency.
func (p *Portfolio) Cash(c Currency) Money { return p.state.Cash.Balance(c) }

// Position returns the open position for a symbol, nil if none.
func (p *Portfolio) Position(symbol string) *Position { return p.state.Positions.Get(symbol) }

// Positions iterates over open positions in stable symbol order.
func (p *Portfolio) Positions() iter.Seq[*Position] { return p.state.Positions.All() }

// Trades iterates over the journal in insertion order.
func (p *Portfolio) Trades() iter.Seq[Trade] { return p.state.Journal.All() }

// TradeCount returns the number of journal records.
func (p *Portfolio) TradeCount() int { return p.state.Journal.Len() }

// DailyValues returns the recorded daily snapshots in insertion order.
func (p *Portfolio) DailyValues() []DailySnapshot { return p.state.DailyValues }

// ValueIn returns the portfolio value for one currency: its cash balance
// plus the market value of the positions quoted in it.
func (p *Portfolio) ValueIn(c Currency) Money {
	return p.state.Cash.Balance(c).Add(p.state.Positions.ValueIn(c))
}

// Values returns the per-currency portfolio values.
func (p *Portfolio) Values() CurrencyAmounts {
	values := NewCurrencyAmounts()
	for _, c := range Currencies {
		values[c] = p.ValueIn(c).Decimal()
	}
	return values
}

// baseAllocation is the fraction of available cash committed to a
// full-confidence auto-sized buy.
var baseAllocation = decimal.NewFromFloat(0.10)

// BuyOrder is a buy request. Price is in the symbol's native currency.
// Shares of zero auto-sizes the order from available cash and confidence.
// A zero Time means now.
type BuyOrder struct {
	Symbol     string
	Price      decimal.Decimal
	Confidence int // signal confidence, 0..100
	Shares     int64
	Time       time.Time
}

// SellOrder is a sell request. Price is in the symbol's native currency.
// Shares of zero sells the whole position; a request for more shares than
// held is clamped to the held quantity, not rejected. A zero Time means now.
type SellOrder struct {
	Symbol string
	Price  decimal.Decimal
	Shares int64
	Reason string
	Time   time.Time
}

// Receipt is the outcome of a buy, sell, or admin command. Business-rule
// failures are reported here, never as errors, and imply that no state was
// touched. The message is human-readable and suitable for direct display.
type Receipt struct {
	OK      bool
	Message string
	Trade   *Trade // journal record appended on success
}

func failure(format string, args ...any) (*Receipt, error) {
	return &Receipt{Message: fmt.Sprintf(format, args...)}, nil
}

// Buy executes a buy order: it debits the symbol's native cash balance,
// opens or merges the position at the recomputed weighted-average price, and
// appends a BUY record. All validations run before any mutation; on a
// validation failure the state is byte-for-byte unchanged.
//
// Only a persistence failure is returned as an error.
func (p *Portfolio) Buy(o BuyOrder) (*Receipt, error) {
	at := o.Time
	if at.IsZero() {
		at = time.Now()
	}
	currency := ClassifySymbol(o.Symbol)
	if !o.Price.IsPositive() {
		return failure("Invalid price %s for %s", o.Price, o.Symbol)
	}
	if o.Confidence < 0 || o.Confidence > 100 {
		return failure("Invalid confidence %d, must be within 0..100", o.Confidence)
	}
	price := M(o.Price, currency)
	available := p.state.Cash.Balance(currency)

	shares := o.Shares
	if shares == 0 {
		shares = autoSize(available, price, o.Confidence)
	}
	if shares <= 0 {
		return failure("Invalid share quantity")
	}

	total := price.MulShares(shares)
	if total.GreaterThan(available) {
		return failure("Insufficient %s funds. Need %s, have %s", currency, total, available)
	}
	if p.state.Positions.Get(o.Symbol) == nil && p.state.Positions.Len() >= p.state.Settings.MaxPositions {
		return failure("Maximum position limit (%d) reached", p.state.Settings.MaxPositions)
	}

	// All validations passed: mutate.
	if err := p.state.Cash.Debit(total); err != nil {
		// Unreachable after the sufficiency check above.
		return failure("%v", err)
	}
	p.state.Positions.buy(o.Symbol, shares, price, o.Confidence, at)

	trade := p.state.Journal.Append(Trade{
		Symbol:              o.Symbol,
		Action:              ActionBuy,
		Shares:              shares,
		Price:               price,
		Currency:            currency,
		Total:               total,
		Confidence:          o.Confidence,
		Date:                at,
		CashAfter:           p.state.Cash.Balance(currency),
		PortfolioValueAfter: p.ValueIn(currency),
	})
	if err := p.persist(); err != nil {
		return nil, err
	}
	return &Receipt{
		OK:      true,
		Message: fmt.Sprintf("Bought %d shares of %s for %s", shares, o.Symbol, total),
		Trade:   &trade,
	}, nil
}

// autoSize computes the order size from available cash: 10% of the balance,
// weighted by confidence, floor-divided by price, minimum one share. The
// minimum can still fail the sufficiency check for an underfunded account.
func autoSize(available, price Money, confidence int) int64 {
	target := available.Decimal().
		Mul(baseAllocation).
		Mul(decimal.NewFromInt(int64(confidence))).
		Div(decimal.NewFromInt(100))
	shares := target.Div(price.Decimal()).IntPart()
	if shares < 1 {
		return 1
	}
	return shares
}

// Sell executes a sell order: it credits the proceeds to the symbol's native
// cash balance, realizes P&L against the weighted-average cost, and appends
// a SELL record. Selling the full position removes it from the book; a
// partial sale leaves the average price unchanged.
//
// Requesting more shares than held sells exactly the held quantity. This
// clamping mirrors the historical behavior and is kept deliberately; see the
// journal's Reason field for the caller-supplied motive.
func (p *Portfolio) Sell(o SellOrder) (*Receipt, error) {
	at := o.Time
	if at.IsZero() {
		at = time.Now()
	}
	pos := p.state.Positions.Get(o.Symbol)
	if pos == nil {
		return failure("No position found for %s", o.Symbol)
	}
	if !o.Price.IsPositive() {
		return failure("Invalid price %s for %s", o.Price, o.Symbol)
	}
	price := M(o.Price, pos.Currency)

	shares := o.Shares
	if shares == 0 || shares > pos.Shares {
		shares = pos.Shares
	}
	if shares <= 0 {
		return failure("Invalid share quantity to sell")
	}

	reason := o.Reason
	if reason == "" {
		reason = "SIGNAL"
	}

	proceeds := price.MulShares(shares)
	costBasis := pos.CostBasis(shares)
	pnl := proceeds.Sub(costBasis)
	pnlPct := pnl.PctOf(costBasis)
	holdingDays := daysBetween(pos.EntryDate, at)
	entryDate := pos.EntryDate

	p.state.Cash.Credit(proceeds)
	p.state.Positions.reduce(o.Symbol, shares, at)

	trade := p.state.Journal.Append(Trade{
		Symbol:              o.Symbol,
		Action:              ActionSell,
		Shares:              shares,
		Price:               price,
		Currency:            price.Currency(),
		Total:               proceeds,
		Date:                at,
		CostBasis:           costBasis,
		PnL:                 pnl,
		PnLPct:              pnlPct,
		HoldingDays:         holdingDays,
		Reason:              reason,
		EntryDate:           entryDate,
		CashAfter:           p.state.Cash.Balance(price.Currency()),
		PortfolioValueAfter: p.ValueIn(price.Currency()),
	})
	if err := p.persist(); err != nil {
		return nil, err
	}
	return &Receipt{
		OK:      true,
		Message: fmt.Sprintf("Sold %d shares of %s for %s (P&L: %s)", shares, o.Symbol, proceeds, pnl),
		Trade:   &trade,
	}, nil
}

// AdminReport describes the state replaced by an admin operation.
type AdminReport struct {
	PositionsBefore int
	TradesBefore    int
	Message         string
}

// Reset restores the cash balances to the initial defaults and clears the
// positions and daily snapshots. The trade journal is kept: the audit trail
// survives a portfolio reset.
func (p *Portfolio) Reset() (*AdminReport, error) {
	report := p.adminReport()
	p.state.Cash = NewCashVaultOf(DefaultInitialCapital())
	p.state.InitialCapital = DefaultInitialCapital()
	p.state.Positions.clear()
	p.state.DailyValues = nil
	p.state.LastReset = time.Now()
	report.Message = fmt.Sprintf("Portfolio reset: cleared %d positions and restored initial cash balances", report.PositionsBefore)
	return report, p.persist()
}

// ClearHistory drops the trade journal and the daily snapshots, keeping cash
// and positions exactly as they are.
func (p *Portfolio) ClearHistory() (*AdminReport, error) {
	report := p.adminReport()
	p.state.Journal.clear()
	p.state.DailyValues = nil
	report.Message = fmt.Sprintf("Trading history cleared: removed %d trade records", report.TradesBefore)
	return report, p.persist()
}

// FullReset replaces the whole state with first-run defaults and a new
// creation timestamp.
func (p *Portfolio) FullReset() (*AdminReport, error) {
	report := p.adminReport()
	now := time.Now()
	p.state = NewState(now)
	p.state.LastReset = now
	report.Message = fmt.Sprintf("Full reset: cleared %d positions, %d trades, and restored all cash balances",
		report.PositionsBefore, report.TradesBefore)
	return report, p.persist()
}

func (p *Portfolio) adminReport() *AdminReport {
	return &AdminReport{
		PositionsBefore: p.state.Positions.Len(),
		TradesBefore:    p.state.Journal.Len(),
	}
}
