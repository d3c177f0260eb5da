package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/importer/ledgercsv"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

const (
	ledgerFile  = "ledger.csv"
	summaryFile = "summary.txt"
)

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// Service bundles a tenant's ledger into a downloadable archive.
type Service struct {
	transactions TransactionLister
	now          func() time.Time
}

func NewService(transactions TransactionLister) *Service {
	return &Service{
		transactions: transactions,
		now:          time.Now,
	}
}

// Filename is the suggested name for an archive produced now.
func (s *Service) Filename() string {
	return fmt.Sprintf("export_%s.zip", s.now().Format("20060102"))
}

// Export writes a zip holding ledger.csv and summary.txt for the
// transactions matching filter, and returns them.
func (s *Service) Export(ctx context.Context, filter transaction.ListFilter, w io.Writer) ([]*transaction.Transaction, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	zw := zip.NewWriter(w)

	ledger, err := zw.Create(ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", ledgerFile, err)
	}

	if err := ledgercsv.Write(ledger, txs); err != nil {
		return nil, fmt.Errorf("writing %s: %w", ledgerFile, err)
	}

	summary, err := zw.Create(summaryFile)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", summaryFile, err)
	}

	if _, err := io.WriteString(summary, GenerateSummary(txs)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", summaryFile, err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	return txs, nil
}

// Preview lists the transactions an archive for filter would hold, with the
// summary it would carry.
func (s *Service) Preview(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, string, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("listing transactions: %w", err)
	}

	return txs, GenerateSummary(txs), nil
}

// GenerateSummary renders one line per transaction followed by the net total
// per currency, e.g. "* 2024-06-03 | Hosting | -€45.50 | Paid".
func GenerateSummary(txs []*transaction.Transaction) string {
	var sb strings.Builder

	totals := make(map[money.Currency]decimal.Decimal, len(money.Currencies))

	for _, tx := range txs {
		sign := ""
		if !tx.Amount.IsNegative() {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n",
			tx.Date.Format(time.DateOnly),
			tx.Description,
			sign,
			money.Format(tx.Amount, tx.Currency),
			statusLabel(tx.Status),
		)

		totals[tx.Currency] = totals[tx.Currency].Add(tx.Amount)
	}

	if len(txs) == 0 {
		return "No transactions.\n"
	}

	sb.WriteString("\n")

	for _, c := range money.Currencies {
		total, ok := totals[c]
		if !ok {
			continue
		}

		fmt.Fprintf(&sb, "Net %s: %s\n", c, money.Format(total, c))
	}

	return sb.String()
}

func statusLabel(s transaction.Status) string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
