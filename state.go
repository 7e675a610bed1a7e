package papertrade

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchemaVersion is the current layout of the persisted state file. Files
// carrying a scalar cash balance predate it and are migrated at load.
const SchemaVersion = "2.0"

// Settings are the tunable knobs of the executor.
type Settings struct {
	MaxPositions    int     `json:"max_positions"`
	RiskPerTrade    float64 `json:"risk_per_trade"`
	AutoUpdateRates bool    `json:"auto_update_rates"`
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() Settings {
	return Settings{
		MaxPositions:    20,
		RiskPerTrade:    0.02,
		AutoUpdateRates: true,
	}
}

// DefaultInitialCapital returns the first-run cash endowment per currency.
func DefaultInitialCapital() CurrencyAmounts {
	return CurrencyAmounts{
		USD: decimal.NewFromInt(10000),
		INR: decimal.NewFromInt(100000),
		MYR: decimal.NewFromInt(10000),
	}
}

// State is the aggregate root of one portfolio instance: everything that is
// persisted lives here, and every mutating operation flushes the whole state
// before returning.
type State struct {
	Cash           *CashVault
	InitialCapital CurrencyAmounts
	Positions      *PositionBook
	Journal        *TradeJournal
	DailyValues    []DailySnapshot
	Settings       Settings
	Created        time.Time
	LastReset      time.Time
	Version        string
}

// NewState constructs the first-run state.
func NewState(now time.Time) *State {
	return &State{
		Cash:           NewCashVaultOf(DefaultInitialCapital()),
		InitialCapital: DefaultInitialCapital(),
		Positions:      NewPositionBook(),
		Journal:        NewTradeJournal(),
		Settings:       DefaultSettings(),
		Created:        now,
		Version:        SchemaVersion,
	}
}
