package importer

import (
	"io"

	"github.com/VeliorGroup/fluxo/internal/transaction"
)

type Format string

const (
	// FormatLedger is the layout written by the ledger export.
	FormatLedger Format = "ledger"
	// FormatStatement is a bank statement with European-formatted amounts.
	FormatStatement Format = "statement"
)

type Parser interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
