package ledger

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

const maxUpcoming = 10

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// SeverityFor maps calendar days until due to a severity.
func SeverityFor(days int) Severity {
	switch {
	case days <= 5:
		return SeverityCritical
	case days <= 14:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

type UpcomingPayment struct {
	ID          uuid.UUID            `json:"id"`
	Description string               `json:"description"`
	CompanyName string               `json:"company_name,omitempty"`
	Category    transaction.Category `json:"category"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    money.Currency       `json:"currency"`
	DueDate     time.Time            `json:"due_date"`
	DaysUntil   int                  `json:"days_until"`
	Severity    Severity             `json:"severity"`
}

// UpcomingPayments lists unsettled expenses due today or later, earliest
// first, at most ten.
func UpcomingPayments(txs []*transaction.Transaction, now time.Time, display money.Currency) []UpcomingPayment {
	today := Day(now)

	var due []*transaction.Transaction

	for _, tx := range txs {
		if !tx.Amount.IsNegative() || !tx.Status.Open() {
			continue
		}

		if Day(tx.Date).Before(today) {
			continue
		}

		due = append(due, tx)
	}

	slices.SortStableFunc(due, func(a, b *transaction.Transaction) int {
		return Day(a.Date).Compare(Day(b.Date))
	})

	if len(due) > maxUpcoming {
		due = due[:maxUpcoming]
	}

	out := make([]UpcomingPayment, 0, len(due))

	for _, tx := range due {
		date := Day(tx.Date)
		days := int(date.Sub(today).Hours() / 24)

		out = append(out, UpcomingPayment{
			ID:          tx.ID,
			Description: tx.Description,
			CompanyName: tx.CompanyName,
			Category:    tx.Category,
			Amount:      tx.Amount.Abs(),
			Currency:    tx.Currency.Or(display),
			DueDate:     date,
			DaysUntil:   days,
			Severity:    SeverityFor(days),
		})
	}

	return out
}
