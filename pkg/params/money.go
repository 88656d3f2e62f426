package params

import "github.com/shopspring/decimal"

// Money is an amount in a currency, as sent by the payment, fulfillment and
// fee-estimate operations.
type Money struct {
	Amount       decimal.Decimal
	CurrencyCode string
}

// NewMoney parses amount into a Money. It panics on a malformed amount and
// is meant for literals.
func NewMoney(amount, currencyCode string) Money {
	return Money{Amount: decimal.RequireFromString(amount), CurrencyCode: currencyCode}
}

// IsZero reports whether m is unset.
func (m Money) IsZero() bool {
	return m.CurrencyCode == "" && m.Amount.IsZero()
}

// Validate requires a currency code and a non-negative amount.
func (m Money) Validate(field string) error {
	if m.CurrencyCode == "" {
		return Missing(field + ".CurrencyCode")
	}
	if m.Amount.IsNegative() {
		return Invalid(field+".Amount", "must not be negative (got %s)", m.Amount)
	}
	return nil
}

// SetMoney stores m as prefix.<amountKey> and prefix.CurrencyCode. MWS
// names the amount field Amount in most sections and Value in outbound
// fulfillment. An unset m is skipped.
func (v Values) SetMoney(prefix, amountKey string, m Money) {
	if m.IsZero() {
		return
	}
	p := withDot(prefix)
	v.SetDecimal(p+amountKey, m.Amount)
	v.Set(p+"CurrencyCode", m.CurrencyCode)
}
