package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/exchangerate"
	"github.com/VeliorGroup/fluxo/internal/ledger"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

type stubLister struct {
	calls int
	txs   []*transaction.Transaction
	err   error
}

func (s *stubLister) List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	s.calls++
	return s.txs, s.err
}

type stubRates struct{ rate decimal.Decimal }

func (s stubRates) GetOrRefresh(ctx context.Context, now time.Time) exchangerate.Rate {
	return exchangerate.Rate{Value: s.rate, Source: exchangerate.SourceBOA, FetchedAt: now}
}

var (
	now     = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	ownerID = uuid.MustParse("b7f3e3a0-8f7a-4b0c-9a51-0d1f2e3c4b5a")
)

func entry(amount string, c money.Currency, st transaction.Status, on time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.New(),
		Amount:   decimal.RequireFromString(amount),
		Currency: c,
		Status:   st,
		Date:     on,
	}
}

func newService(lister *stubLister) *Service {
	s := NewService(lister, stubRates{rate: decimal.NewFromInt(100)}, time.Minute)
	s.now = func() time.Time { return now }

	return s
}

func TestService_Summary(t *testing.T) {
	lister := &stubLister{txs: []*transaction.Transaction{
		entry("10000", money.EUR, transaction.StatusPaid, now.AddDate(0, -2, 0)),
		entry("100000", money.ALL, transaction.StatusPaid, now.AddDate(0, -1, 0)),
		entry("-600", money.EUR, transaction.StatusPaid, now.AddDate(0, 0, -10)),
		entry("2500", money.EUR, transaction.StatusPending, now.AddDate(0, 0, 5)),
		entry("-300", money.EUR, transaction.StatusForecasted, now.AddDate(0, 0, 3)),
	}}

	got, err := newService(lister).Summary(context.Background(), ownerID, money.EUR)
	require.NoError(t, err)

	assert.Equal(t, money.EUR, got.Display)
	assert.True(t, decimal.NewFromInt(10400).Equal(got.LiquidityTotal), "liquidity %s", got.LiquidityTotal)
	assert.True(t, decimal.NewFromInt(200).Equal(got.BurnRateTotal), "burn %s", got.BurnRateTotal)

	require.NotNil(t, got.Runway.Months)
	assert.InDelta(t, 52.0, *got.Runway.Months, 1e-9)
	assert.Equal(t, ledger.TierHealthy, got.Runway.Tier)

	assert.Equal(t, 1, got.Pending.Count)
	assert.True(t, decimal.NewFromInt(2500).Equal(got.PendingTotal))

	require.Len(t, got.Upcoming, 1)
	assert.Equal(t, ledger.SeverityCritical, got.Upcoming[0].Severity)
	assert.Len(t, got.Series, 12)
}

func TestService_Summary_UnboundedRunway(t *testing.T) {
	lister := &stubLister{txs: []*transaction.Transaction{
		entry("500", money.EUR, transaction.StatusPaid, now),
	}}

	got, err := newService(lister).Summary(context.Background(), ownerID, money.ALL)
	require.NoError(t, err)

	assert.Nil(t, got.Runway.Months)
	assert.Equal(t, ledger.TierHealthy, got.Runway.Tier)
	assert.True(t, decimal.NewFromInt(50000).Equal(got.LiquidityTotal))
}

func TestService_Summary_Cached(t *testing.T) {
	lister := &stubLister{}
	svc := newService(lister)

	_, err := svc.Summary(context.Background(), ownerID, money.EUR)
	require.NoError(t, err)

	_, err = svc.Summary(context.Background(), ownerID, money.EUR)
	require.NoError(t, err)
	assert.Equal(t, 1, lister.calls)

	// Each display currency has its own entry.
	_, err = svc.Summary(context.Background(), ownerID, money.ALL)
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)

	_, err = svc.Refresh(context.Background(), ownerID, money.EUR)
	require.NoError(t, err)
	assert.Equal(t, 3, lister.calls)
}

func TestService_Summary_ListError(t *testing.T) {
	svc := newService(&stubLister{err: errors.New("db down")})

	_, err := svc.Summary(context.Background(), ownerID, money.EUR)
	assert.ErrorContains(t, err, "listing transactions")
}
