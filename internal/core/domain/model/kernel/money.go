package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"lots/internal/pkg/errs"
	"lots/internal/pkg/guard"
)

// DefaultCurrency is used when an amount is given without a currency.
const DefaultCurrency = "UAH"

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney")

// Money is an immutable monetary amount with a currency. It backs the
// value, minimalStep, guarantee and registrationFee terms of an auction.
//
// The zero value is invalid. Amounts are never negative.
//
// Example:
//
//	value, err := kernel.NewMoney(100, "UAH", true)
//	if err != nil {
//	    return err
//	}
//	half := value.Half() // 50 UAH, VAT included
type Money struct { //nolint:recvcheck // setters use pointer receivers
	amount                float64
	currency              string
	valueAddedTaxIncluded bool
	guard                 guard.ConstructorGuard
}

// NewMoney validates and builds a Money value.
//
// Parameters:
//   - amount: non-negative, finite amount
//   - currency: ISO 4217 code; an empty string selects DefaultCurrency
//   - valueAddedTaxIncluded: whether the amount already includes VAT
//
// Returns:
//   - Money: the constructed value
//   - error: ValueIsOutOfRange or ValueIsInvalid when an argument is rejected
func NewMoney(amount float64, currency string, valueAddedTaxIncluded bool) (Money, error) {
	m := Money{
		valueAddedTaxIncluded: valueAddedTaxIncluded,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// MustNewMoney is NewMoney for literals known to be valid. It panics otherwise.
func MustNewMoney(amount float64, currency string, valueAddedTaxIncluded bool) Money {
	m, err := NewMoney(amount, currency, valueAddedTaxIncluded)
	if err != nil {
		panic(err)
	}
	return m
}

// Validate reports whether the Money was built through NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the numeric amount.
func (m Money) Amount() float64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// ValueAddedTaxIncluded reports whether the amount includes VAT.
func (m Money) ValueAddedTaxIncluded() bool {
	return m.valueAddedTaxIncluded
}

// Half returns the same money with the amount divided by two.
// Derived auctions are priced this way from the first auction.
func (m Money) Half() Money {
	half := m
	half.amount = m.amount / 2
	return half
}

// Zero returns the same money with a zero amount.
func (m Money) Zero() Money {
	zero := m
	zero.amount = 0
	return zero
}

// IsEqual compares amount, currency and the VAT flag.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount &&
		m.currency == other.currency &&
		m.valueAddedTaxIncluded == other.valueAddedTaxIncluded
}

// String implements fmt.Stringer, e.g. "100.00 UAH".
func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.amount, m.currency)
}

func (m *Money) setAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%v is not a finite number", amount))
	}
	if amount < 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, math.MaxFloat64)
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a three-letter code", currency))
	}
	m.currency = currency
	return nil
}
