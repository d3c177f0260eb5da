package exchangerate

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const historyDays = 30

// HistoryEntry is one published rate. Change is relative to the previous
// entry.
type HistoryEntry struct {
	Date   time.Time       `json:"date"`
	Rate   decimal.Decimal `json:"rate"`
	Change decimal.Decimal `json:"change"`
}

// History simulates the last 30 days of published rates around base, oldest
// first. Weekends are skipped since the bank does not publish on them, and
// today's entry is base itself. The oldest entry has no predecessor, so its
// Change is zero. The fluctuation is deterministic in the number of days back
// so repeated calls agree.
// TODO: persist the daily rate fetched by the service and serve real history.
func History(base decimal.Decimal, now time.Time) []HistoryEntry {
	baseF, _ := base.Float64()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	entries := make([]HistoryEntry, 0, historyDays+1)
	var prev decimal.Decimal

	for i := historyDays; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		rate := base
		if i > 0 {
			delta := (seed(i) - 0.5) * 0.3
			rate = decimal.NewFromFloat(baseF + delta*(float64(i)/10)).Round(2)
		}

		change := decimal.Zero
		if len(entries) > 0 {
			change = rate.Sub(prev).Round(2)
		}

		entries = append(entries, HistoryEntry{
			Date:   day,
			Rate:   rate,
			Change: change,
		})
		prev = rate
	}

	return entries
}

func seed(d int) float64 {
	x := math.Sin(float64(d)*9301+49297) * 49999
	return x - math.Floor(x)
}

type Stats struct {
	Min decimal.Decimal `json:"min"`
	Avg decimal.Decimal `json:"avg"`
	Max decimal.Decimal `json:"max"`
}

// HistoryStats summarises entries. The average is rounded to two places.
func HistoryStats(entries []HistoryEntry) Stats {
	if len(entries) == 0 {
		return Stats{}
	}

	s := Stats{Min: entries[0].Rate, Max: entries[0].Rate}
	sum := decimal.Zero

	for _, e := range entries {
		if e.Rate.LessThan(s.Min) {
			s.Min = e.Rate
		}

		if e.Rate.GreaterThan(s.Max) {
			s.Max = e.Rate
		}

		sum = sum.Add(e.Rate)
	}

	s.Avg = sum.Div(decimal.NewFromInt(int64(len(entries)))).Round(2)

	return s
}
