package ledger_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/ledger"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(amount string, c money.Currency, st transaction.Status, on time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.New(),
		Amount:   decimal.RequireFromString(amount),
		Currency: c,
		Status:   st,
		Date:     on,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestLiquidity(t *testing.T) {
	day := date(2024, 5, 1)

	t.Run("PaidIncomeMinusPaidExpense", func(t *testing.T) {
		got := ledger.Liquidity([]*transaction.Transaction{
			tx("100", money.EUR, transaction.StatusPaid, day),
			tx("-40", money.EUR, transaction.StatusPaid, day),
		}, money.EUR)

		assertDecimal(t, "60", got.EUR)
		assertDecimal(t, "0", got.ALL)
	})

	t.Run("IgnoresOpenAndBucketsUnknown", func(t *testing.T) {
		got := ledger.Liquidity([]*transaction.Transaction{
			tx("100", money.EUR, transaction.StatusPaid, day),
			tx("500", money.ALL, transaction.StatusPending, day),
			tx("2000", money.ALL, transaction.StatusPaid, day),
			tx("-30", money.EUR, transaction.StatusForecasted, day),
			tx("7", money.Currency("USD"), transaction.StatusPaid, day),
		}, money.EUR)

		assertDecimal(t, "107", got.EUR)
		assertDecimal(t, "2000", got.ALL)
	})

	t.Run("Empty", func(t *testing.T) {
		got := ledger.Liquidity(nil, money.ALL)
		assert.True(t, got.EUR.IsZero())
		assert.True(t, got.ALL.IsZero())
	})
}

func TestTotals_In(t *testing.T) {
	conv, err := money.NewConverter(decimal.RequireFromString("100"), money.EUR)
	require.NoError(t, err)

	totals := ledger.Liquidity([]*transaction.Transaction{
		tx("10", money.EUR, transaction.StatusPaid, date(2024, 1, 1)),
		tx("500", money.ALL, transaction.StatusPaid, date(2024, 1, 1)),
	}, money.EUR)

	assertDecimal(t, "15", totals.In(conv))
	assertDecimal(t, "500", totals.Get(money.ALL))
}

func TestBurnRate(t *testing.T) {
	now := time.Date(2024, 5, 15, 18, 30, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		tx("-300", money.EUR, transaction.StatusPaid, date(2024, 5, 10)),
		tx("-300", money.EUR, transaction.StatusPaid, date(2024, 2, 15)),
		tx("-900", money.EUR, transaction.StatusPaid, date(2024, 2, 14)),
		tx("-100", money.EUR, transaction.StatusPaid, date(2024, 5, 16)),
		tx("-50", money.EUR, transaction.StatusPending, date(2024, 4, 1)),
		tx("1000", money.EUR, transaction.StatusPaid, date(2024, 4, 1)),
		tx("-3000", money.ALL, transaction.StatusPaid, date(2024, 5, 15)),
	}

	got := ledger.BurnRate(txs, now, money.EUR)

	assertDecimal(t, "200", got.EUR)
	assertDecimal(t, "1000", got.ALL)
}

func TestBurnRate_EndOfMonthWindow(t *testing.T) {
	now := time.Date(2024, 5, 31, 9, 0, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		tx("-150", money.EUR, transaction.StatusPaid, date(2024, 2, 28)),
		tx("-300", money.EUR, transaction.StatusPaid, date(2024, 2, 29)),
		tx("-600", money.EUR, transaction.StatusPaid, date(2024, 3, 1)),
	}

	got := ledger.BurnRate(txs, now, money.EUR)

	assertDecimal(t, "300", got.EUR)
}

func TestMonthsBefore(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		n    int
		want time.Time
	}{
		{name: "MidMonth", day: date(2024, 5, 15), n: 3, want: date(2024, 2, 15)},
		{name: "ClampsToLeapFebruary", day: date(2024, 5, 31), n: 3, want: date(2024, 2, 29)},
		{name: "ClampsToFebruary", day: date(2023, 5, 31), n: 3, want: date(2023, 2, 28)},
		{name: "ClampsToThirtyDays", day: date(2024, 7, 31), n: 1, want: date(2024, 6, 30)},
		{name: "CrossesYear", day: date(2024, 1, 31), n: 3, want: date(2023, 10, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.MonthsBefore(tt.day, tt.n))
		})
	}
}

func TestRunway(t *testing.T) {
	tests := []struct {
		name      string
		liquidity string
		burn      string
		want      float64
		tier      ledger.Tier
	}{
		{name: "NoBurn", liquidity: "1000", burn: "0", want: math.Inf(1), tier: ledger.TierHealthy},
		{name: "NegativeBurn", liquidity: "1000", burn: "-5", want: math.Inf(1), tier: ledger.TierHealthy},
		{name: "RoundsToOneDecimal", liquidity: "1000", burn: "300", want: 3.3, tier: ledger.TierWarning},
		{name: "ExactlySixIsWarning", liquidity: "600", burn: "100", want: 6, tier: ledger.TierWarning},
		{name: "AboveSixIsHealthy", liquidity: "610", burn: "100", want: 6.1, tier: ledger.TierHealthy},
		{name: "NegativeLiquidity", liquidity: "-200", burn: "100", want: -2, tier: ledger.TierWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.Runway(decimal.RequireFromString(tt.liquidity), decimal.RequireFromString(tt.burn))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.tier, ledger.RunwayTier(got))
		})
	}
}

func TestPendingInvoices(t *testing.T) {
	day := date(2024, 5, 1)

	got := ledger.PendingInvoices([]*transaction.Transaction{
		tx("100", money.EUR, transaction.StatusPending, day),
		tx("900", money.ALL, transaction.StatusForecasted, day),
		tx("50", money.EUR, transaction.StatusPaid, day),
		tx("-70", money.EUR, transaction.StatusPending, day),
	}, money.EUR)

	assert.Equal(t, 2, got.Count)
	assertDecimal(t, "100", got.Totals.EUR)
	assertDecimal(t, "900", got.Totals.ALL)
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		days int
		want ledger.Severity
	}{
		{days: 0, want: ledger.SeverityCritical},
		{days: 5, want: ledger.SeverityCritical},
		{days: 6, want: ledger.SeverityWarning},
		{days: 14, want: ledger.SeverityWarning},
		{days: 15, want: ledger.SeverityInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ledger.SeverityFor(tt.days), "days %d", tt.days)
	}
}

func TestUpcomingPayments(t *testing.T) {
	now := time.Date(2024, 5, 10, 23, 0, 0, 0, time.UTC)

	first := tx("-10", money.EUR, transaction.StatusPending, date(2024, 5, 25))
	second := tx("-20", money.EUR, transaction.StatusForecasted, date(2024, 5, 25))

	txs := []*transaction.Transaction{
		first,
		tx("-5", money.EUR, transaction.StatusPending, date(2024, 5, 9)),
		tx("-6", money.EUR, transaction.StatusPaid, date(2024, 5, 12)),
		tx("40", money.EUR, transaction.StatusPending, date(2024, 5, 12)),
		tx("-300", money.ALL, transaction.StatusPending, date(2024, 5, 16)),
		second,
		tx("-99", money.EUR, transaction.StatusPending, date(2024, 5, 10)),
	}

	got := ledger.UpcomingPayments(txs, now, money.EUR)
	require.Len(t, got, 4)

	assert.Equal(t, 0, got[0].DaysUntil)
	assert.Equal(t, ledger.SeverityCritical, got[0].Severity)
	assertDecimal(t, "99", got[0].Amount)

	assert.Equal(t, 6, got[1].DaysUntil)
	assert.Equal(t, ledger.SeverityWarning, got[1].Severity)
	assert.Equal(t, money.ALL, got[1].Currency)

	assert.Equal(t, first.ID, got[2].ID)
	assert.Equal(t, second.ID, got[3].ID)
	assert.Equal(t, 15, got[3].DaysUntil)
	assert.Equal(t, ledger.SeverityInfo, got[3].Severity)
}

func TestUpcomingPayments_CapsAtTen(t *testing.T) {
	now := date(2024, 5, 1)

	var txs []*transaction.Transaction
	for i := 20; i > 0; i-- {
		txs = append(txs, tx("-1", money.EUR, transaction.StatusPending, now.AddDate(0, 0, i)))
	}

	got := ledger.UpcomingPayments(txs, now, money.EUR)
	require.Len(t, got, 10)
	assert.Equal(t, 1, got[0].DaysUntil)
	assert.Equal(t, 10, got[9].DaysUntil)
}

func TestRunwaySeries(t *testing.T) {
	conv, err := money.NewConverter(decimal.RequireFromString("100"), money.EUR)
	require.NoError(t, err)

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		tx("1000", money.EUR, transaction.StatusPaid, date(2024, 1, 10)),
		tx("-10000", money.ALL, transaction.StatusPaid, date(2024, 5, 31)),
		tx("-50", money.EUR, transaction.StatusPaid, date(2024, 6, 1)),
		tx("-500", money.EUR, transaction.StatusPaid, date(2024, 6, 20)),
		tx("-700", money.EUR, transaction.StatusPending, date(2024, 3, 1)),
	}

	got := ledger.RunwaySeries(txs, now, conv)
	require.Len(t, got, 12)

	labels := make([]string, 0, len(got))
	for i, p := range got {
		labels = append(labels, p.Month)

		if i == 5 {
			require.NotNil(t, p.Actual)
			require.NotNil(t, p.Projected)

			continue
		}

		assert.False(t, p.Actual != nil && p.Projected != nil, "point %d has both values", i)
	}

	assert.Equal(t, []string{
		"Jan 2024", "Feb 2024", "Mar 2024", "Apr 2024", "May 2024", "Jun 2024",
		"Jul 2024", "Aug 2024", "Sep 2024", "Oct 2024", "Nov 2024", "Dec 2024",
	}, labels)

	for i, want := range []string{"1000", "1000", "1000", "1000", "900", "850"} {
		require.NotNil(t, got[i].Actual)
		assertDecimal(t, want, *got[i].Actual)
	}

	assertDecimal(t, "850", *got[5].Projected)

	for k, want := range []string{"800", "750", "700", "650", "600", "550"} {
		p := got[6+k]
		assert.Nil(t, p.Actual)
		require.NotNil(t, p.Projected)
		assertDecimal(t, want, *p.Projected)
	}
}

func TestAccountBalance(t *testing.T) {
	accountID := uuid.New()
	other := uuid.New()
	day := date(2024, 5, 1)

	withAccount := func(entry *transaction.Transaction, id uuid.UUID) *transaction.Transaction {
		entry.AccountID = &id
		return entry
	}

	txs := []*transaction.Transaction{
		withAccount(tx("500", money.EUR, transaction.StatusPaid, day), accountID),
		withAccount(tx("-200", money.EUR, transaction.StatusPaid, day), accountID),
		withAccount(tx("-999", money.EUR, transaction.StatusPending, day), accountID),
		withAccount(tx("77", money.EUR, transaction.StatusPaid, day), other),
		tx("33", money.EUR, transaction.StatusPaid, day),
	}

	got := ledger.AccountBalance(accountID, decimal.NewFromInt(1000), txs)

	assertDecimal(t, "1300", got.Balance)
	assertDecimal(t, "500", got.Inflows)
	assertDecimal(t, "-200", got.Outflows)
}
