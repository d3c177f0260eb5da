// Package ledgercsv reads and writes the ledger's own CSV layout, so an export
// can be imported back into another tenant or company.
package ledgercsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/VeliorGroup/fluxo/internal/encoding"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

const (
	colDate        = "date"
	colDescription = "description"
	colCategory    = "category"
	colStatus      = "status"
	colAmount      = "amount"
	colCurrency    = "currency"
	colCompany     = "company"
	colAccount     = "account"
)

// Header is the first row written by Writer.
var Header = []string{colDate, colDescription, colCategory, colStatus, colAmount, colCurrency, colCompany, colAccount}

var required = []string{colDate, colAmount, colCurrency}

// Record renders tx as one row under Header. Amount is signed.
func Record(tx *transaction.Transaction) []string {
	return []string{
		tx.Date.Format(time.DateOnly),
		tx.Description,
		string(tx.Category),
		string(tx.Status),
		tx.Amount.StringFixed(2),
		string(tx.Currency),
		tx.CompanyName,
		tx.AccountName,
	}
}

// Write emits Header followed by one record per transaction.
func Write(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, tx := range txs {
		if err := cw.Write(Record(tx)); err != nil {
			return fmt.Errorf("write transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse reads a ledger export. Company and account columns are ignored; the
// caller decides where imported rows belong. Empty category and status are
// left for the caller to default.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var params []transaction.CreateParams

	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		p, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		params = append(params, p)
	}

	return params, nil
}

func parseRow(row []string, cols map[string]int) (transaction.CreateParams, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	date, err := time.Parse(time.DateOnly, cell(colDate))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("date: %w", err)
	}

	amount, err := decimal.NewFromString(cell(colAmount))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("amount: %w", err)
	}

	currency, err := money.ParseCurrency(cell(colCurrency))
	if err != nil {
		return transaction.CreateParams{}, err
	}

	p := transaction.CreateParams{
		Amount:      amount.Abs(),
		Type:        transaction.TypeIncome,
		Currency:    currency,
		Date:        date,
		Description: cell(colDescription),
		Category:    transaction.Category(cell(colCategory)),
		Status:      transaction.Status(cell(colStatus)),
	}

	if amount.IsNegative() {
		p.Type = transaction.TypeExpense
	}

	return p, nil
}
