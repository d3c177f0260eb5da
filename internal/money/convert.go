package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidRate is returned when a conversion between different currencies
// is attempted with a missing or non-positive rate.
var ErrInvalidRate = errors.New("invalid exchange rate")

// divisionPrecision is the number of fraction digits kept when dividing by a rate.
const divisionPrecision = 16

// Convert converts amount from one currency to another using a single EUR->ALL rate.
// EUR to ALL multiplies by rate, ALL to EUR divides by it. No rounding is applied.
func Convert(amount decimal.Decimal, from, to Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	if !rate.IsPositive() {
		return decimal.Zero, ErrInvalidRate
	}

	if from == EUR {
		return amount.Mul(rate), nil
	}

	return amount.DivRound(rate, divisionPrecision), nil
}

// Converter folds amounts of any supported currency into a single display currency.
type Converter struct {
	Rate    decimal.Decimal
	Display Currency
}

func NewConverter(rate decimal.Decimal, display Currency) (Converter, error) {
	if !rate.IsPositive() {
		return Converter{}, ErrInvalidRate
	}

	return Converter{Rate: rate, Display: display}, nil
}

// To converts amount into the display currency. Amounts in an unknown
// currency are taken to already be in the display currency.
func (c Converter) To(amount decimal.Decimal, from Currency) decimal.Decimal {
	converted, err := Convert(amount, from.Or(c.Display), c.Display, c.Rate)
	if err != nil {
		return amount
	}

	return converted
}
