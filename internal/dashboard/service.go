// Package dashboard assembles the finance overview for a tenant.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/exchangerate"
	"github.com/VeliorGroup/fluxo/internal/ledger"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

const DefaultCacheTTL = time.Minute

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type RateSource interface {
	GetOrRefresh(ctx context.Context, now time.Time) exchangerate.Rate
}

// Runway is the months of cash left. Months is nil when nothing is being
// burned and the runway is unbounded.
type Runway struct {
	Months *float64    `json:"months"`
	Tier   ledger.Tier `json:"tier"`
}

type Summary struct {
	Display        money.Currency           `json:"display_currency"`
	Rate           exchangerate.Rate        `json:"exchange_rate"`
	Liquidity      ledger.Totals            `json:"liquidity"`
	LiquidityTotal decimal.Decimal          `json:"liquidity_total"`
	BurnRate       ledger.Totals            `json:"burn_rate"`
	BurnRateTotal  decimal.Decimal          `json:"burn_rate_total"`
	Runway         Runway                   `json:"runway"`
	Pending        ledger.Pending           `json:"pending_invoices"`
	PendingTotal   decimal.Decimal          `json:"pending_total"`
	Upcoming       []ledger.UpcomingPayment `json:"upcoming_payments"`
	Series         []ledger.RunwayPoint     `json:"runway_series"`
	GeneratedAt    time.Time                `json:"generated_at"`
}

type Service struct {
	txs   TransactionLister
	rates RateSource
	cache *cache.Cache
	now   func() time.Time
}

// NewService caches summaries for ttl per tenant and display currency. A
// zero ttl means DefaultCacheTTL.
func NewService(txs TransactionLister, rates RateSource, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Service{
		txs:   txs,
		rates: rates,
		cache: cache.New(ttl, 2*ttl),
		now:   time.Now,
	}
}

func cacheKey(ownerID uuid.UUID, display money.Currency) string {
	return ownerID.String() + ":" + string(display)
}

// Summary returns the cached overview when available.
func (s *Service) Summary(ctx context.Context, ownerID uuid.UUID, display money.Currency) (*Summary, error) {
	display = display.Or(money.EUR)

	if v, ok := s.cache.Get(cacheKey(ownerID, display)); ok {
		return v.(*Summary), nil
	}

	return s.Refresh(ctx, ownerID, display)
}

// Refresh recomputes the overview from the ledger and replaces the cached
// copy.
func (s *Service) Refresh(ctx context.Context, ownerID uuid.UUID, display money.Currency) (*Summary, error) {
	display = display.Or(money.EUR)

	txs, err := s.txs.List(ctx, transaction.ListFilter{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	now := s.now()
	rate := s.rates.GetOrRefresh(ctx, now)

	conv, err := money.NewConverter(rate.Value, display)
	if err != nil {
		return nil, fmt.Errorf("exchange rate: %w", err)
	}

	summary := Build(txs, now, rate, conv)
	s.cache.SetDefault(cacheKey(ownerID, display), summary)

	return summary, nil
}

// Build computes the overview for txs without touching the cache.
func Build(txs []*transaction.Transaction, now time.Time, rate exchangerate.Rate, conv money.Converter) *Summary {
	display := conv.Display

	liquidity := ledger.Liquidity(txs, display)
	burn := ledger.BurnRate(txs, now, display)
	pending := ledger.PendingInvoices(txs, display)

	liquidityTotal := liquidity.In(conv)
	burnTotal := burn.In(conv)

	runway := ledger.Runway(liquidityTotal, burnTotal)

	out := &Summary{
		Display:        display,
		Rate:           rate,
		Liquidity:      liquidity,
		LiquidityTotal: liquidityTotal.Round(2),
		BurnRate:       burn,
		BurnRateTotal:  burnTotal.Round(2),
		Runway:         Runway{Tier: ledger.RunwayTier(runway)},
		Pending:        pending,
		PendingTotal:   pending.Totals.In(conv).Round(2),
		Upcoming:       ledger.UpcomingPayments(txs, now, display),
		Series:         ledger.RunwaySeries(txs, now, conv),
		GeneratedAt:    now,
	}

	if !math.IsInf(runway, 1) {
		out.Runway.Months = &runway
	}

	return out
}
