// Package ledger derives the finance metrics shown on the dashboard from a
// tenant's transactions. Every function here is pure and total: empty input
// yields zero values, never an error.
package ledger

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

// burnWindowMonths is the trailing window averaged by BurnRate.
const burnWindowMonths = 3

// healthyRunwayMonths is the runway above which the tier is healthy.
const healthyRunwayMonths = 6

// Totals holds one amount per supported currency.
type Totals struct {
	EUR decimal.Decimal `json:"eur"`
	ALL decimal.Decimal `json:"all"`
}

// add puts amount in the bucket for c. Amounts in a currency outside the
// supported set are counted in the display bucket.
func (t *Totals) add(c, display money.Currency, amount decimal.Decimal) {
	switch c.Or(display) {
	case money.ALL:
		t.ALL = t.ALL.Add(amount)
	default:
		t.EUR = t.EUR.Add(amount)
	}
}

// Get returns the bucket for c.
func (t Totals) Get(c money.Currency) decimal.Decimal {
	if c == money.ALL {
		return t.ALL
	}

	return t.EUR
}

// In collapses both buckets into the converter's display currency.
func (t Totals) In(conv money.Converter) decimal.Decimal {
	return conv.To(t.EUR, money.EUR).Add(conv.To(t.ALL, money.ALL))
}

// Liquidity is the sum of paid amounts per currency.
func Liquidity(txs []*transaction.Transaction, display money.Currency) Totals {
	var out Totals

	for _, tx := range txs {
		if tx.Status != transaction.StatusPaid {
			continue
		}

		out.add(tx.Currency, display, tx.Amount)
	}

	return out
}

// BurnRate is the monthly average of paid expenses dated within the trailing
// three calendar months up to and including today.
func BurnRate(txs []*transaction.Transaction, now time.Time, display money.Currency) Totals {
	today := Day(now)
	start := MonthsBefore(today, burnWindowMonths)

	var spent Totals

	for _, tx := range txs {
		if tx.Status != transaction.StatusPaid || !tx.Amount.IsNegative() {
			continue
		}

		d := Day(tx.Date)
		if d.Before(start) || d.After(today) {
			continue
		}

		spent.add(tx.Currency, display, tx.Amount.Abs())
	}

	months := decimal.NewFromInt(burnWindowMonths)

	return Totals{
		EUR: spent.EUR.Div(months),
		ALL: spent.ALL.Div(months),
	}
}

// Runway is the number of months the liquidity covers at the given burn,
// rounded to one decimal. It is +Inf when nothing is being burned.
func Runway(liquidity, burn decimal.Decimal) float64 {
	if !burn.IsPositive() {
		return math.Inf(1)
	}

	f, _ := liquidity.Div(burn).Round(1).Float64()

	return f
}

type Tier string

const (
	TierHealthy Tier = "healthy"
	TierWarning Tier = "warning"
)

// RunwayTier classifies a runway for display.
func RunwayTier(runway float64) Tier {
	if runway > healthyRunwayMonths {
		return TierHealthy
	}

	return TierWarning
}

// Pending summarises income that has not settled yet.
type Pending struct {
	Count  int    `json:"count"`
	Totals Totals `json:"totals"`
}

// PendingInvoices counts income with status pending or forecasted.
func PendingInvoices(txs []*transaction.Transaction, display money.Currency) Pending {
	var out Pending

	for _, tx := range txs {
		if !tx.Amount.IsPositive() || !tx.Status.Open() {
			continue
		}

		out.Count++
		out.Totals.add(tx.Currency, display, tx.Amount)
	}

	return out
}

// Day truncates t to its calendar date, keeping the date it has in its own
// location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthsBefore steps day back n calendar months. The day of month is clamped
// to the target month's length, so May 31 minus three months is Feb 29 in a
// leap year.
func MonthsBefore(day time.Time, n int) time.Time {
	first := time.Date(day.Year(), day.Month()-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()

	return first.AddDate(0, 0, min(day.Day(), last)-1)
}
