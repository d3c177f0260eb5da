package payroll

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrTaxesExceedGross = errors.New("taxes exceed gross salary")

// TaxMode selects how the tax value of a payroll entry is interpreted.
type TaxMode string

const (
	TaxModePercentage TaxMode = "percentage"
	TaxModeFixed      TaxMode = "fixed"
)

// taxesDueDay is the day of the month after the pay period on which
// withholding taxes and contributions are due.
const taxesDueDay = 15

// Split is the cash outflow of one salary payment: the net amount owed to the
// employee and the taxes owed to the state, each with its own due date.
type Split struct {
	Gross     decimal.Decimal
	Taxes     decimal.Decimal
	Net       decimal.Decimal
	SalaryDue time.Time
	TaxesDue  time.Time
}

// ComputeSplit derives taxes and net salary from gross. In percentage mode
// value is a percent of gross and taxes are rounded to a whole unit; in fixed
// mode value is the tax amount itself.
func ComputeSplit(gross decimal.Decimal, mode TaxMode, value decimal.Decimal, payPeriod time.Time) (Split, error) {
	if !gross.IsPositive() {
		return Split{}, fmt.Errorf("gross salary must be positive, got %s", gross)
	}

	if value.IsNegative() {
		return Split{}, fmt.Errorf("tax value must not be negative, got %s", value)
	}

	var taxes decimal.Decimal

	switch mode {
	case TaxModePercentage:
		taxes = gross.Mul(value).Div(decimal.NewFromInt(100)).Round(0)
	case TaxModeFixed:
		taxes = value
	default:
		return Split{}, fmt.Errorf("unknown tax mode %q", mode)
	}

	if taxes.GreaterThan(gross) {
		return Split{}, ErrTaxesExceedGross
	}

	y, m, _ := payPeriod.Date()

	return Split{
		Gross:     gross,
		Taxes:     taxes,
		Net:       gross.Sub(taxes),
		SalaryDue: time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC),
		TaxesDue:  time.Date(y, m+1, taxesDueDay, 0, 0, 0, 0, time.UTC),
	}, nil
}
