package papertrade

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Currency identifies one of the three independent cash accounts of the
// portfolio. Currencies are deliberately never mixed inside a single
// transaction: every per-symbol computation stays in the symbol's native
// currency.
type Currency string

const (
	USD Currency = "USD"
	INR Currency = "INR"
	MYR Currency = "MYR"
)

// Currencies lists all supported currencies in display order.
var Currencies = []Currency{USD, INR, MYR}

// ClassifySymbol returns the native currency a symbol is quoted in, derived
// from its exchange suffix: ".NS" and ".BO" (NSE/BSE) are INR, ".KL" (Bursa
// Malaysia) is MYR, anything else is USD. The classification is total: there
// is no failure case.
func ClassifySymbol(symbol string) Currency {
	switch {
	case strings.HasSuffix(symbol, ".NS"), strings.HasSuffix(symbol, ".BO"):
		return INR
	case strings.HasSuffix(symbol, ".KL"):
		return MYR
	default:
		return USD
	}
}

// ParseCurrency parses a currency code into a Currency.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case USD:
		return USD, nil
	case INR:
		return INR, nil
	case MYR:
		return MYR, nil
	default:
		return "", fmt.Errorf("unsupported currency %q", s)
	}
}

func (c Currency) String() string { return string(c) }

// UnmarshalJSON implements json.Unmarshaler, rejecting unknown codes so that
// a corrupted state file fails at load rather than later in an invariant.
func (c *Currency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	cur, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = cur
	return nil
}
