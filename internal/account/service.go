package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/ledger"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

var ErrNotFound = errors.New("account not found")

// Account is a bank, cash or card account of a company. Its current balance
// is never stored; see WithBalance.
type Account struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	CompanyID      uuid.UUID
	Name           string
	Currency       money.Currency
	Type           string
	Description    string
	IsDefault      bool
	OpeningBalance decimal.Decimal
	CompanyName    string // Loaded via JOIN
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// WithBalance is an account together with its derived balance.
type WithBalance struct {
	*Account
	ledger.Balance
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error

	CompanyOwned(ctx context.Context, ownerID, companyID uuid.UUID) (bool, error)
}

// TransactionLister loads the ledger balances are derived from.
type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	repo Repository
	txs  TransactionLister
}

func NewService(repo Repository, txs TransactionLister) *Service {
	return &Service{repo: repo, txs: txs}
}

type Params struct {
	OwnerID        uuid.UUID       `json:"owner_id" validate:"required"`
	CompanyID      uuid.UUID       `json:"company_id" validate:"required"`
	Name           string          `json:"name" validate:"required,max=200"`
	Currency       money.Currency  `json:"currency" validate:"currency"`
	Type           string          `json:"type" validate:"required,max=50"`
	Description    string          `json:"description" validate:"max=500"`
	IsDefault      bool            `json:"is_default"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

func (p *Params) normalize() error {
	p.Name = validate.Text(p.Name)
	p.Type = validate.Text(p.Type)
	p.Description = validate.Text(p.Description)

	return validate.Struct(p)
}

func (p *Params) apply(a *Account) {
	a.OwnerID = p.OwnerID
	a.CompanyID = p.CompanyID
	a.Name = p.Name
	a.Currency = p.Currency
	a.Type = p.Type
	a.Description = p.Description
	a.IsDefault = p.IsDefault
	a.OpeningBalance = p.OpeningBalance
}

func (s *Service) Create(ctx context.Context, params Params) (*Account, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	if err := s.checkCompany(ctx, params.OwnerID, params.CompanyID); err != nil {
		return nil, err
	}

	a := &Account{}
	params.apply(a)

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, ownerID)
}

// ListWithBalances returns every account of the owner with its balance
// recomputed from the paid ledger.
func (s *Service) ListWithBalances(ctx context.Context, ownerID uuid.UUID) ([]WithBalance, error) {
	accounts, err := s.repo.ListAccounts(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	paid := transaction.StatusPaid

	txs, err := s.txs.List(ctx, transaction.ListFilter{OwnerID: ownerID, Status: &paid})
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}

	out := make([]WithBalance, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, WithBalance{
			Account: a,
			Balance: ledger.AccountBalance(a.ID, a.OpeningBalance, txs),
		})
	}

	return out, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Account, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetAccount(ctx, params.OwnerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkCompany(ctx, params.OwnerID, params.CompanyID); err != nil {
		return nil, err
	}

	params.apply(a)

	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteAccount(ctx, ownerID, id)
}

// checkCompany rejects a company that is missing or belongs to another owner.
func (s *Service) checkCompany(ctx context.Context, ownerID, companyID uuid.UUID) error {
	ok, err := s.repo.CompanyOwned(ctx, ownerID, companyID)
	if err != nil {
		return fmt.Errorf("checking company: %w", err)
	}

	if !ok {
		return validate.Fail("company_id", "unknown company")
	}

	return nil
}
