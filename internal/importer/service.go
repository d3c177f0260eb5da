package importer

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/importer/ledgercsv"
	"github.com/VeliorGroup/fluxo/internal/importer/statement"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

// Options fills in what a file cannot carry. Currency and Status only apply
// to rows that leave them empty.
type Options struct {
	CompanyID uuid.UUID
	AccountID *uuid.UUID
	Currency  money.Currency
	Status    transaction.Status
}

type Service struct {
	parsers map[Format]Parser
}

func NewService() *Service {
	return &Service{
		parsers: map[Format]Parser{
			FormatLedger:    ledgercsv.New(),
			FormatStatement: statement.New(),
		},
	}
}

func (s *Service) Import(format Format, r io.Reader, opts Options) ([]transaction.CreateParams, error) {
	parser, ok := s.parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	params, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}

	if opts.Status == "" {
		opts.Status = transaction.StatusPaid
	}

	for i := range params {
		p := &params[i]
		p.CompanyID = opts.CompanyID

		if opts.AccountID != nil {
			p.AccountID = opts.AccountID
		}

		if p.Currency == "" {
			p.Currency = opts.Currency
		}

		if p.Status == "" {
			p.Status = opts.Status
		}
	}

	return params, nil
}
