package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/database"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/payroll"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// legColumns maps a leg to its status column. Only these names are ever
// interpolated into SQL.
var legColumns = map[payroll.Leg]string{
	payroll.LegSalary: "salary_status",
	payroll.LegTaxes:  "taxes_status",
}

func (s *Store) CreateStub(ctx context.Context, p *payroll.Stub) error {
	query := `
		INSERT INTO payroll_stubs (
			owner_id, company_id, employee_name, employee_id, pay_period_date, currency,
			gross_salary, net_salary, taxes_and_contributions, salary_status, taxes_status,
			salary_due_date, taxes_due_date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.OwnerID, p.CompanyID, p.EmployeeName, p.EmployeeID, p.PayPeriodDate, p.Currency,
		p.GrossSalary, p.NetSalary, p.Taxes, p.SalaryStatus, p.TaxesStatus,
		p.SalaryDueDate, p.TaxesDueDate,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payroll stub: %w", err)
	}

	return nil
}

func (s *Store) ListStubs(ctx context.Context, ownerID uuid.UUID) ([]*payroll.Stub, error) {
	query := `
		SELECT p.id, p.owner_id, p.company_id, p.employee_name, p.employee_id, p.pay_period_date, p.currency,
			p.gross_salary, p.net_salary, p.taxes_and_contributions, p.salary_status, p.taxes_status,
			p.salary_due_date, p.taxes_due_date, c.name AS company_name, p.created_at
		FROM payroll_stubs p
		LEFT JOIN companies c ON p.company_id = c.id AND c.owner_id = p.owner_id
		WHERE p.owner_id = $1
		ORDER BY p.pay_period_date DESC, p.employee_name
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing payroll stubs: %w", err)
	}
	defer rows.Close()

	var out []*payroll.Stub

	for rows.Next() {
		var (
			p                       payroll.Stub
			currency, salary, taxes string
			companyName             sql.NullString
		)

		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.CompanyID, &p.EmployeeName, &p.EmployeeID, &p.PayPeriodDate, &currency,
			&p.GrossSalary, &p.NetSalary, &p.Taxes, &salary, &taxes,
			&p.SalaryDueDate, &p.TaxesDueDate, &companyName, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning payroll stub: %w", err)
		}

		if p.Currency, err = money.ParseCurrency(currency); err != nil {
			return nil, fmt.Errorf("payroll stub %s: %w", p.ID, err)
		}

		if p.SalaryStatus, err = payroll.ParseStatus(salary); err != nil {
			return nil, fmt.Errorf("payroll stub %s: %w", p.ID, err)
		}

		if p.TaxesStatus, err = payroll.ParseStatus(taxes); err != nil {
			return nil, fmt.Errorf("payroll stub %s: %w", p.ID, err)
		}

		p.CompanyName = companyName.String
		out = append(out, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payroll stubs: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateLegStatus(ctx context.Context, ownerID, id uuid.UUID, leg payroll.Leg, status payroll.Status) error {
	column, ok := legColumns[leg]
	if !ok {
		return fmt.Errorf("unknown payroll leg %q", leg)
	}

	query := fmt.Sprintf(`UPDATE payroll_stubs SET %s = $1 WHERE id = $2 AND owner_id = $3`, column)

	res, err := s.db.ExecContext(ctx, query, status, id, ownerID)
	if err != nil {
		return fmt.Errorf("updating %s status: %w", leg, err)
	}

	return requireAffected(res)
}

func (s *Store) DeleteStub(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM payroll_stubs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting payroll stub: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return payroll.ErrNotFound
	}

	return nil
}

func (s *Store) CompanyOwned(ctx context.Context, ownerID, companyID uuid.UUID) (bool, error) {
	return database.Owned(ctx, s.db, database.Companies, ownerID, companyID)
}
