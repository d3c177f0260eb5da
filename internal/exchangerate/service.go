package exchangerate

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type Service struct {
	fetcher  Fetcher
	cache    *Cache
	fallback decimal.Decimal
	now      func() time.Time
	group    singleflight.Group
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithFallback(rate decimal.Decimal) Option {
	return func(s *Service) {
		if rate.IsPositive() {
			s.fallback = rate
		}
	}
}

func NewService(fetcher Fetcher, cache *Cache, opts ...Option) *Service {
	s := &Service{
		fetcher:  fetcher,
		cache:    cache,
		fallback: DefaultFallback,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Current returns the rate at the service clock's now.
func (s *Service) Current(ctx context.Context) Rate {
	return s.GetOrRefresh(ctx, s.now())
}

// GetOrRefresh returns the cached rate when fresh and fetches a new one
// otherwise. Concurrent refreshes share one upstream request, which outlives
// the cancellation of whichever caller started it. A failed refresh yields
// the fallback rate, which is never cached.
func (s *Service) GetOrRefresh(ctx context.Context, now time.Time) Rate {
	if r, ok := s.cache.Get(now); ok {
		return r
	}

	v, err, _ := s.group.Do("rate", func() (any, error) {
		if r, ok := s.cache.Get(now); ok {
			return r, nil
		}

		r, err := s.fetcher.Fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		r.Source = SourceBOA
		r.FetchedAt = now
		s.cache.Put(r)

		return r, nil
	})
	if err != nil {
		slog.WarnContext(ctx, "exchange rate refresh failed, using fallback", "error", err, "fallback", s.fallback.String())
		return fallback(s.fallback, now)
	}

	return v.(Rate)
}

// CurrentHistory returns the history as of the service clock's now.
func (s *Service) CurrentHistory() []HistoryEntry {
	return s.History(s.now())
}

// History returns the simulated 30-day history around the last known rate.
func (s *Service) History(now time.Time) []HistoryEntry {
	base := s.fallback
	if r, ok := s.cache.Last(); ok {
		base = r.Value
	}

	return History(base, now)
}
