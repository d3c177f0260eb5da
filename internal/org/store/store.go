package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/database"
	"github.com/VeliorGroup/fluxo/internal/org"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func nullableID(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}

	v := id.UUID

	return &v
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return org.ErrNotFound
	}

	return nil
}

func (s *Store) CreateDepartment(ctx context.Context, d *org.Department) error {
	query := `
		INSERT INTO departments (owner_id, company_id, name, parent_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, d.OwnerID, d.CompanyID, d.Name, d.ParentID).Scan(&d.ID, &d.CreatedAt); err != nil {
		return fmt.Errorf("creating department: %w", err)
	}

	return nil
}

func (s *Store) ListDepartments(ctx context.Context, ownerID uuid.UUID) ([]*org.Department, error) {
	query := `
		SELECT d.id, d.owner_id, d.company_id, d.name, d.parent_id, c.name AS company_name, d.created_at
		FROM departments d
		LEFT JOIN companies c ON d.company_id = c.id AND c.owner_id = d.owner_id
		WHERE d.owner_id = $1
		ORDER BY d.name
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	defer rows.Close()

	var out []*org.Department

	for rows.Next() {
		var d org.Department

		var parent uuid.NullUUID

		var companyName sql.NullString

		if err := rows.Scan(&d.ID, &d.OwnerID, &d.CompanyID, &d.Name, &parent, &companyName, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning department: %w", err)
		}

		d.ParentID = nullableID(parent)
		d.CompanyName = companyName.String
		out = append(out, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating departments: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, d *org.Department) error {
	query := `
		UPDATE departments
		SET company_id = $1, name = $2, parent_id = $3, updated_at = NOW()
		WHERE id = $4 AND owner_id = $5
	`

	res, err := s.db.ExecContext(ctx, query, d.CompanyID, d.Name, d.ParentID, d.ID, d.OwnerID)
	if err != nil {
		return fmt.Errorf("updating department: %w", err)
	}

	return requireAffected(res)
}

// DeleteDepartment removes a department. Child departments become roots and
// its roles are removed with it.
func (s *Store) DeleteDepartment(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting department: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) CreateRole(ctx context.Context, r *org.Role) error {
	query := `
		INSERT INTO roles (owner_id, department_id, name, description, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.OwnerID, r.DepartmentID, r.Name, r.Description, r.ParentID).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating role: %w", err)
	}

	return nil
}

func (s *Store) ListRoles(ctx context.Context, ownerID uuid.UUID) ([]*org.Role, error) {
	query := `
		SELECT r.id, r.owner_id, r.department_id, r.name, r.description, r.parent_id, d.name AS department_name, r.created_at
		FROM roles r
		LEFT JOIN departments d ON r.department_id = d.id AND d.owner_id = r.owner_id
		WHERE r.owner_id = $1
		ORDER BY r.name
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	var out []*org.Role

	for rows.Next() {
		var r org.Role

		var parent uuid.NullUUID

		var departmentName sql.NullString

		if err := rows.Scan(&r.ID, &r.OwnerID, &r.DepartmentID, &r.Name, &r.Description, &parent, &departmentName, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}

		r.ParentID = nullableID(parent)
		r.DepartmentName = departmentName.String
		out = append(out, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateRole(ctx context.Context, r *org.Role) error {
	query := `
		UPDATE roles
		SET department_id = $1, name = $2, description = $3, parent_id = $4, updated_at = NOW()
		WHERE id = $5 AND owner_id = $6
	`

	res, err := s.db.ExecContext(ctx, query, r.DepartmentID, r.Name, r.Description, r.ParentID, r.ID, r.OwnerID)
	if err != nil {
		return fmt.Errorf("updating role: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) DeleteRole(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}

	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

const selectPersonColumns = `
	p.id, p.owner_id, p.company_id, p.first_name, p.last_name, p.email, p.role, p.department,
	p.status, c.name AS company_name, p.created_at
`

func scanPerson(s scanner) (*org.Person, error) {
	var p org.Person

	var company uuid.NullUUID

	var status string

	var companyName sql.NullString

	if err := s.Scan(
		&p.ID, &p.OwnerID, &company, &p.FirstName, &p.LastName, &p.Email, &p.Role, &p.Department,
		&status, &companyName, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	st, err := org.ParsePersonStatus(status)
	if err != nil {
		return nil, fmt.Errorf("person %s: %w", p.ID, err)
	}

	p.Status = st
	p.CompanyID = nullableID(company)
	p.CompanyName = companyName.String

	return &p, nil
}

func (s *Store) CreatePerson(ctx context.Context, p *org.Person) error {
	query := `
		INSERT INTO people (owner_id, company_id, first_name, last_name, email, role, department, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.OwnerID, p.CompanyID, p.FirstName, p.LastName, p.Email, p.Role, p.Department, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating person: %w", err)
	}

	return nil
}

func (s *Store) GetPerson(ctx context.Context, ownerID, id uuid.UUID) (*org.Person, error) {
	query := `SELECT ` + selectPersonColumns + `
		FROM people p
		LEFT JOIN companies c ON p.company_id = c.id AND c.owner_id = p.owner_id
		WHERE p.id = $1 AND p.owner_id = $2`

	p, err := scanPerson(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, org.ErrNotFound
		}

		return nil, fmt.Errorf("getting person: %w", err)
	}

	return p, nil
}

func (s *Store) ListPeople(ctx context.Context, ownerID uuid.UUID) ([]*org.Person, error) {
	query := `SELECT ` + selectPersonColumns + `
		FROM people p
		LEFT JOIN companies c ON p.company_id = c.id AND c.owner_id = p.owner_id
		WHERE p.owner_id = $1
		ORDER BY p.first_name, p.last_name`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var out []*org.Person

	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}

		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}

	return out, nil
}

func (s *Store) UpdatePerson(ctx context.Context, p *org.Person) error {
	query := `
		UPDATE people
		SET company_id = $1, first_name = $2, last_name = $3, email = $4, role = $5, department = $6,
			status = $7, updated_at = NOW()
		WHERE id = $8 AND owner_id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		p.CompanyID, p.FirstName, p.LastName, p.Email, p.Role, p.Department, p.Status, p.ID, p.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) DeletePerson(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) CompanyOwned(ctx context.Context, ownerID, companyID uuid.UUID) (bool, error) {
	return database.Owned(ctx, s.db, database.Companies, ownerID, companyID)
}

func (s *Store) DepartmentOwned(ctx context.Context, ownerID, departmentID uuid.UUID) (bool, error) {
	return database.Owned(ctx, s.db, database.Departments, ownerID, departmentID)
}
