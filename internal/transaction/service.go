package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) error

	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error

	BeginImport(ctx context.Context, ownerID uuid.UUID, minDate, maxDate time.Time) (ImportTx, error)

	CompanyOwned(ctx context.Context, ownerID, companyID uuid.UUID) (bool, error)
	AccountOwned(ctx context.Context, ownerID, accountID uuid.UUID) (bool, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams describes a new ledger entry. Amount is unsigned; the sign is
// derived from Type when the transaction is built.
type CreateParams struct {
	OwnerID     uuid.UUID       `json:"owner_id" validate:"required"`
	CompanyID   uuid.UUID       `json:"company_id" validate:"required"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Type        Type            `json:"type" validate:"oneof=income expense"`
	Currency    money.Currency  `json:"currency" validate:"currency"`
	Date        time.Time       `json:"date" validate:"required"`
	Description string          `json:"description" validate:"max=500"`
	Category    Category        `json:"category" validate:"required"`
	Status      Status          `json:"status" validate:"oneof=paid pending forecasted"`
}

func (p *CreateParams) normalize() error {
	p.Description = validate.Text(p.Description)
	p.Amount = p.Amount.Abs()

	if err := validate.Struct(p); err != nil {
		return err
	}

	if _, err := ParseCategory(string(p.Category)); err != nil {
		return validate.Fail("category", "%v", err)
	}

	return nil
}

func (p *CreateParams) transaction() *Transaction {
	return &Transaction{
		OwnerID:     p.OwnerID,
		CompanyID:   p.CompanyID,
		AccountID:   p.AccountID,
		Amount:      SignedAmount(p.Amount, p.Type),
		Currency:    p.Currency,
		Date:        p.Date,
		Description: p.Description,
		Category:    p.Category,
		Status:      p.Status,
	}
}

type ListFilter struct {
	OwnerID   uuid.UUID
	Status    *Status
	CompanyID *uuid.UUID
	AccountID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// checkRefs rejects a company or account that is missing or belongs to
// another owner. seen remembers references already checked within a batch.
func (s *Service) checkRefs(ctx context.Context, p CreateParams, seen map[uuid.UUID]bool) error {
	if !seen[p.CompanyID] {
		ok, err := s.repo.CompanyOwned(ctx, p.OwnerID, p.CompanyID)
		if err != nil {
			return fmt.Errorf("checking company: %w", err)
		}

		if !ok {
			return validate.Fail("company_id", "unknown company")
		}

		seen[p.CompanyID] = true
	}

	if p.AccountID != nil && !seen[*p.AccountID] {
		ok, err := s.repo.AccountOwned(ctx, p.OwnerID, *p.AccountID)
		if err != nil {
			return fmt.Errorf("checking account: %w", err)
		}

		if !ok {
			return validate.Fail("account_id", "unknown account")
		}

		seen[*p.AccountID] = true
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	if err := s.checkRefs(ctx, params, map[uuid.UUID]bool{}); err != nil {
		return nil, err
	}

	tx := params.transaction()
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Update replaces the editable fields of an existing transaction.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Transaction, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetTransaction(ctx, params.OwnerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkRefs(ctx, params, map[uuid.UUID]bool{}); err != nil {
		return nil, err
	}

	updated := params.transaction()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateTransaction(ctx, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return validate.Fail("status", "%v", err)
	}

	return s.repo.UpdateStatus(ctx, ownerID, id, status)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, ownerID, id)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, ownerID, id)
}

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

type dupKey struct {
	Date        string
	Amount      string
	Currency    money.Currency
	Description string
}

func keyOf(date time.Time, amount decimal.Decimal, c money.Currency, desc string) dupKey {
	return dupKey{
		Date:        date.Format(time.DateOnly),
		Amount:      amount.StringFixed(2),
		Currency:    c,
		Description: desc,
	}
}

// ImportBatch inserts params unless any of them already exist in the
// ledger. When duplicates are found nothing is written and the caller gets
// the split between new rows and conflicts to resolve.
func (s *Service) ImportBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	if err := normalizeAll(ownerID, params); err != nil {
		return nil, err
	}

	if err := s.checkAllRefs(ctx, params); err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, ownerID, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))
	for _, d := range duplicates {
		lookup[keyOf(d.Date, d.Amount, d.Currency, d.Description)] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		k := keyOf(p.Date, SignedAmount(p.Amount, p.Type), p.Currency, p.Description)

		existing, found := lookup[k]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs := paramsToTransactions(newParams)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateBatch inserts params without duplicate detection, typically after
// the caller resolved the conflicts reported by ImportBatch.
func (s *Service) CreateBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	if err := normalizeAll(ownerID, params); err != nil {
		return nil, err
	}

	if err := s.checkAllRefs(ctx, params); err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	txs := paramsToTransactions(params)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

func normalizeAll(ownerID uuid.UUID, params []CreateParams) error {
	for i := range params {
		params[i].OwnerID = ownerID

		if err := params[i].normalize(); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return nil
}

func (s *Service) checkAllRefs(ctx context.Context, params []CreateParams) error {
	seen := make(map[uuid.UUID]bool)

	for i := range params {
		if err := s.checkRefs(ctx, params[i], seen); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToTransactions(params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i := range params {
		txs[i] = params[i].transaction()
	}

	return txs
}
