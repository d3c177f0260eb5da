package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Shuma" with value "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns (e.g. "Debi"/"Kredi").
	amountSplit
)

// Profile describes the column layout of a bank statement export.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is tried in order during detection; more specific layouts first.
var profiles = []Profile{
	{
		Name:       "debi-kredi",
		DateCol:    "data",
		DescCol:    "përshkrimi",
		AmountMode: amountSplit,
		DebitCol:   "debi",
		CreditCol:  "kredi",
	},
	{
		Name:       "shuma",
		DateCol:    "data",
		DescCol:    "përshkrimi",
		AmountMode: amountSingle,
		AmountCol:  "shuma",
	},
	{
		Name:       "debit-credit",
		DateCol:    "date",
		DescCol:    "description",
		AmountMode: amountSplit,
		DebitCol:   "debit",
		CreditCol:  "credit",
	},
	{
		Name:       "amount",
		DateCol:    "date",
		DescCol:    "description",
		AmountMode: amountSingle,
		AmountCol:  "amount",
	},
}
