package papertrade

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// The whole portfolio is persisted as a single JSON document. Writes always
// emit the current schema; reads accept the legacy single-currency layout
// (scalar cash, positions and trades without a currency field) and migrate it
// in memory at load time. The file is rewritten in the current schema on the
// next mutation, never in place at load.

// LoadState reads the portfolio file at path. A missing file is not an
// error: it yields first-run defaults, so the very first command against a
// new path behaves like a freshly funded account.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewState(time.Now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read portfolio file %q: %w", path, err)
	}
	state, err := decodeState(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse portfolio file %q: %w", path, err)
	}
	return state, nil
}

func decodeState(data []byte) (*State, error) {
	var raw struct {
		Cash           json.RawMessage `json:"cash"`
		InitialCapital json.RawMessage `json:"initial_capital"`
		Positions      *PositionBook   `json:"positions"`
		Journal        *TradeJournal   `json:"trade_history"`
		DailyValues    []DailySnapshot `json:"daily_values"`
		Settings       *Settings       `json:"settings"`
		Created        time.Time       `json:"created_date"`
		LastReset      time.Time       `json:"last_reset"`
		Version        string          `json:"version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cash, migratedCash, err := decodeAmounts(raw.Cash, DefaultInitialCapital())
	if err != nil {
		return nil, fmt.Errorf("invalid cash: %w", err)
	}
	initial, _, err := decodeAmounts(raw.InitialCapital, DefaultInitialCapital())
	if err != nil {
		return nil, fmt.Errorf("invalid initial_capital: %w", err)
	}

	state := &State{
		Cash:           NewCashVaultOf(cash),
		InitialCapital: initial,
		Positions:      raw.Positions,
		Journal:        raw.Journal,
		DailyValues:    raw.DailyValues,
		Created:        raw.Created,
		LastReset:      raw.LastReset,
		Version:        raw.Version,
	}
	if state.Positions == nil {
		state.Positions = NewPositionBook()
	}
	if state.Journal == nil {
		state.Journal = NewTradeJournal()
	}
	if raw.Settings != nil {
		state.Settings = *raw.Settings
	} else {
		state.Settings = DefaultSettings()
	}
	if state.Created.IsZero() {
		state.Created = time.Now()
	}
	if migratedCash || state.Version != SchemaVersion {
		log.Printf("migrating portfolio file from version %q to %q", state.Version, SchemaVersion)
		state.Version = SchemaVersion
	}
	return state, nil
}

// decodeAmounts accepts either the current per-currency object or the legacy
// scalar USD amount. A legacy scalar becomes the USD balance; the other
// currencies are seeded from the defaults. It reports whether a migration
// happened.
func decodeAmounts(data json.RawMessage, defaults CurrencyAmounts) (CurrencyAmounts, bool, error) {
	if len(data) == 0 {
		return defaults, false, nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		amounts := NewCurrencyAmounts()
		if err := json.Unmarshal(trimmed, &amounts); err != nil {
			return nil, false, err
		}
		return amounts, false, nil
	}
	var scalar decimal.Decimal
	if err := json.Unmarshal(trimmed, &scalar); err != nil {
		return nil, false, err
	}
	amounts := defaults.Clone()
	amounts[USD] = scalar
	return amounts, true, nil
}

// SaveState writes the whole state to path in the current schema, creating
// parent directories as needed. Top-level keys keep a fixed order so the file
// diffs cleanly between sessions.
func SaveState(path string, s *State) error {
	dailyValues := s.DailyValues
	if dailyValues == nil {
		dailyValues = []DailySnapshot{}
	}
	var w jsonObjectWriter
	w.Append("cash", s.Cash)
	w.Append("initial_capital", s.InitialCapital)
	w.Append("positions", s.Positions)
	w.Append("trade_history", s.Journal)
	w.Append("daily_values", dailyValues)
	w.Append("settings", s.Settings)
	w.Append("created_date", s.Created.Format(time.RFC3339))
	w.Optional("last_reset", formatOptionalTime(s.LastReset))
	w.Append("version", s.Version)
	data, err := w.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode portfolio state: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("cannot encode portfolio state: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create portfolio directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("cannot write portfolio file %q: %w", path, err)
	}
	return nil
}

func formatOptionalTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
