package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

var ErrNotFound = errors.New("payroll stub not found")

// Status is the settlement state of one leg of a payroll stub. Salary and
// taxes are settled independently.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPaid, StatusPending:
		return st, nil
	}

	return "", fmt.Errorf("unknown payroll status %q", s)
}

// Leg names one of the two payments of a stub.
type Leg string

const (
	LegSalary Leg = "salary"
	LegTaxes  Leg = "taxes"
)

type Stub struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	CompanyID     uuid.UUID
	EmployeeName  string
	EmployeeID    string
	PayPeriodDate time.Time
	Currency      money.Currency
	GrossSalary   decimal.Decimal
	NetSalary     decimal.Decimal
	Taxes         decimal.Decimal
	SalaryStatus  Status
	TaxesStatus   Status
	SalaryDueDate time.Time
	TaxesDueDate  time.Time
	CompanyName   string // Loaded via JOIN
	CreatedAt     time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payroll
type Repository interface {
	CreateStub(ctx context.Context, s *Stub) error
	ListStubs(ctx context.Context, ownerID uuid.UUID) ([]*Stub, error)
	UpdateLegStatus(ctx context.Context, ownerID, id uuid.UUID, leg Leg, status Status) error
	DeleteStub(ctx context.Context, ownerID, id uuid.UUID) error

	CompanyOwned(ctx context.Context, ownerID, companyID uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID       uuid.UUID       `json:"owner_id" validate:"required"`
	CompanyID     uuid.UUID       `json:"company_id" validate:"required"`
	EmployeeName  string          `json:"employee_name" validate:"required,max=200"`
	EmployeeID    string          `json:"employee_id" validate:"required,max=50"`
	PayPeriodDate time.Time       `json:"pay_period_date" validate:"required"`
	Currency      money.Currency  `json:"currency" validate:"currency"`
	GrossSalary   decimal.Decimal `json:"gross_salary" validate:"gt=0"`
	TaxMode       TaxMode         `json:"tax_mode" validate:"oneof=percentage fixed"`
	TaxValue      decimal.Decimal `json:"tax_value" validate:"gte=0"`
}

// Create computes the salary/taxes split and stores a stub with both legs
// pending.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Stub, error) {
	params.EmployeeName = validate.Text(params.EmployeeName)
	params.EmployeeID = validate.Text(params.EmployeeID)

	if params.Currency == "" {
		params.Currency = money.ALL
	}

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	split, err := ComputeSplit(params.GrossSalary, params.TaxMode, params.TaxValue, params.PayPeriodDate)
	if err != nil {
		return nil, validate.Fail("tax_value", "%v", err)
	}

	if err := s.checkCompany(ctx, params.OwnerID, params.CompanyID); err != nil {
		return nil, err
	}

	stub := &Stub{
		OwnerID:       params.OwnerID,
		CompanyID:     params.CompanyID,
		EmployeeName:  params.EmployeeName,
		EmployeeID:    params.EmployeeID,
		PayPeriodDate: params.PayPeriodDate,
		Currency:      params.Currency,
		GrossSalary:   split.Gross,
		NetSalary:     split.Net,
		Taxes:         split.Taxes,
		SalaryStatus:  StatusPending,
		TaxesStatus:   StatusPending,
		SalaryDueDate: split.SalaryDue,
		TaxesDueDate:  split.TaxesDue,
	}

	if err := s.repo.CreateStub(ctx, stub); err != nil {
		return nil, err
	}

	return stub, nil
}

// List returns the owner's stubs, most recent pay period first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Stub, error) {
	return s.repo.ListStubs(ctx, ownerID)
}

func (s *Service) MarkSalary(ctx context.Context, ownerID, id uuid.UUID, status Status) error {
	return s.mark(ctx, ownerID, id, LegSalary, status)
}

func (s *Service) MarkTaxes(ctx context.Context, ownerID, id uuid.UUID, status Status) error {
	return s.mark(ctx, ownerID, id, LegTaxes, status)
}

func (s *Service) mark(ctx context.Context, ownerID, id uuid.UUID, leg Leg, status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return validate.Fail("status", "%v", err)
	}

	return s.repo.UpdateLegStatus(ctx, ownerID, id, leg, status)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteStub(ctx, ownerID, id)
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
