package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

const (
	actualMonths    = 6
	projectedMonths = 6
	seriesPlaces    = 2
)

// RunwayPoint is one month of the cash runway chart. Actual is nil for
// future months and Projected is nil for past ones; the current month
// carries both so the two lines join.
type RunwayPoint struct {
	Month     string           `json:"month"`
	Actual    *decimal.Decimal `json:"actual"`
	Projected *decimal.Decimal `json:"projected"`
}

// RunwaySeries returns twelve monthly points: the cumulative paid balance at
// the end of each of the last six months (today for the current one), then a
// linear projection over the next six months using the change between the
// last two actual points.
func RunwaySeries(txs []*transaction.Transaction, now time.Time, conv money.Converter) []RunwayPoint {
	today := Day(now)
	thisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	points := make([]RunwayPoint, 0, actualMonths+projectedMonths)
	actuals := make([]decimal.Decimal, 0, actualMonths)

	for i := actualMonths - 1; i >= 0; i-- {
		month := thisMonth.AddDate(0, -i, 0)

		boundary := month.AddDate(0, 1, -1)
		if i == 0 {
			boundary = today
		}

		v := cumulative(txs, boundary, conv).Round(seriesPlaces)
		actuals = append(actuals, v)

		points = append(points, RunwayPoint{Month: month.Format("Jan 2006"), Actual: &v})
	}

	last := actuals[len(actuals)-1]
	delta := last.Sub(actuals[len(actuals)-2])

	bridge := last
	points[len(points)-1].Projected = &bridge

	for k := 1; k <= projectedMonths; k++ {
		month := thisMonth.AddDate(0, k, 0)
		p := last.Add(delta.Mul(decimal.NewFromInt(int64(k)))).Round(seriesPlaces)

		points = append(points, RunwayPoint{Month: month.Format("Jan 2006"), Projected: &p})
	}

	return points
}

// cumulative sums paid amounts dated on or before boundary in the display
// currency.
func cumulative(txs []*transaction.Transaction, boundary time.Time, conv money.Converter) decimal.Decimal {
	sum := decimal.Zero

	for _, tx := range txs {
		if tx.Status != transaction.StatusPaid || Day(tx.Date).After(boundary) {
			continue
		}

		sum = sum.Add(conv.To(tx.Amount, tx.Currency))
	}

	return sum
}
