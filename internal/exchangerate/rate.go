// Package exchangerate provides the official EUR/ALL rate published by the
// Bank of Albania, cached for a day, with a fixed fallback when the source is
// unreachable.
package exchangerate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Source string

const (
	SourceBOA      Source = "boa"
	SourceFallback Source = "fallback"
)

// DefaultFallback is the EUR->ALL rate used when no live rate is available.
var DefaultFallback = decimal.RequireFromString("96.4")

// Rate is the number of ALL per EUR and its change since the previous
// publication.
type Rate struct {
	Value     decimal.Decimal `json:"rate"`
	Change    decimal.Decimal `json:"change"`
	Source    Source          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Fetcher retrieves the current rate from an upstream source.
type Fetcher interface {
	Fetch(ctx context.Context) (Rate, error)
}

func fallback(value decimal.Decimal, now time.Time) Rate {
	return Rate{
		Value:     value,
		Change:    decimal.Zero,
		Source:    SourceFallback,
		FetchedAt: now,
	}
}
