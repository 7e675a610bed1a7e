package papertrade

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyAmounts maps every supported currency to a decimal amount. It is
// used for cash balances, initial capital, and per-currency valuations.
// Marshaling always emits the currencies in display order.
type CurrencyAmounts map[Currency]decimal.Decimal

// NewCurrencyAmounts returns a map with a zero amount for every currency.
func NewCurrencyAmounts() CurrencyAmounts {
	a := make(CurrencyAmounts, len(Currencies))
	for _, c := range Currencies {
		a[c] = decimal.Zero
	}
	return a
}

// Clone returns an independent copy.
func (a CurrencyAmounts) Clone() CurrencyAmounts {
	b := make(CurrencyAmounts, len(a))
	for c, v := range a {
		b[c] = v
	}
	return b
}

// Get returns the amount for a currency, zero if absent.
func (a CurrencyAmounts) Get(c Currency) decimal.Decimal {
	if v, ok := a[c]; ok {
		return v
	}
	return decimal.Zero
}

// MarshalJSON implements json.Marshaler with a stable currency order.
func (a CurrencyAmounts) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, c := range Currencies {
		w.Append(string(c), a.Get(c))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler, backfilling missing currencies
// with zero.
func (a *CurrencyAmounts) UnmarshalJSON(data []byte) error {
	var raw map[Currency]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := NewCurrencyAmounts()
	for c, v := range raw {
		out[c] = v
	}
	*a = out
	return nil
}

// CashVault holds the per-currency cash balances of the portfolio.
//
// Balances are invariantly non-negative: a debit that would drive a balance
// negative is rejected before any state change (validate-then-mutate, there
// is no rollback path).
type CashVault struct {
	balances CurrencyAmounts
}

// NewCashVault creates a vault with zero balances in every currency.
func NewCashVault() *CashVault {
	return &CashVault{balances: NewCurrencyAmounts()}
}

// NewCashVaultOf creates a vault holding the given amounts.
func NewCashVaultOf(amounts CurrencyAmounts) *CashVault {
	v := NewCashVault()
	for c, amount := range amounts {
		v.balances[c] = amount
	}
	return v
}

// Balance returns the current balance for a currency.
func (v *CashVault) Balance(c Currency) Money {
	return M(v.balances.Get(c), c)
}

// CanDebit reports whether the vault holds at least the given amount in the
// amount's currency.
func (v *CashVault) CanDebit(amount Money) bool {
	return v.Balance(amount.Currency()).GreaterThanOrEqual(amount)
}

// Debit removes the amount from its currency's balance. The sufficiency
// check happens before any mutation.
func (v *CashVault) Debit(amount Money) error {
	if amount.IsNegative() {
		return fmt.Errorf("cannot debit a negative amount %s", amount)
	}
	balance := v.Balance(amount.Currency())
	if balance.LessThan(amount) {
		return fmt.Errorf("insufficient %s funds: need %s, have %s", amount.Currency(), amount, balance)
	}
	v.balances[amount.Currency()] = balance.Sub(amount).Decimal()
	return nil
}

// Credit adds the amount to its currency's balance.
func (v *CashVault) Credit(amount Money) {
	if amount.IsNegative() {
		panic("cannot credit a negative amount")
	}
	balance := v.Balance(amount.Currency())
	v.balances[amount.Currency()] = balance.Add(amount).Decimal()
}

// Amounts returns a copy of the balances.
func (v *CashVault) Amounts() CurrencyAmounts { return v.balances.Clone() }

// MarshalJSON implements json.Marshaler.
func (v CashVault) MarshalJSON() ([]byte, error) { return v.balances.MarshalJSON() }

// UnmarshalJSON implements json.Unmarshaler.
func (v *CashVault) UnmarshalJSON(data []byte) error {
	return v.balances.UnmarshalJSON(data)
}
