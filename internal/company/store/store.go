package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/company"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectCompanyColumns = `id, owner_id, name, type, nipt, address, email, phone, logo_url, created_at, updated_at`

func scanCompany(s scanner) (*company.Company, error) {
	var c company.Company

	var typ string

	if err := s.Scan(
		&c.ID, &c.OwnerID, &c.Name, &typ, &c.NIPT, &c.Address, &c.Email, &c.Phone, &c.LogoURL,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	switch t := company.Type(typ); t {
	case company.TypePersonFizik, company.TypeSHPK:
		c.Type = t
	default:
		return nil, fmt.Errorf("company %s: unknown type %q", c.ID, typ)
	}

	return &c, nil
}

func (s *Store) CreateCompany(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (owner_id, name, type, nipt, address, email, phone, logo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.OwnerID, c.Name, c.Type, c.NIPT, c.Address, c.Email, c.Phone, c.LogoURL,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating company: %w", err)
	}

	return nil
}

func (s *Store) GetCompany(ctx context.Context, ownerID, id uuid.UUID) (*company.Company, error) {
	query := `SELECT ` + selectCompanyColumns + ` FROM companies WHERE id = $1 AND owner_id = $2`

	c, err := scanCompany(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrNotFound
		}

		return nil, fmt.Errorf("getting company: %w", err)
	}

	return c, nil
}

func (s *Store) ListCompanies(ctx context.Context, ownerID uuid.UUID) ([]*company.Company, error) {
	query := `SELECT ` + selectCompanyColumns + ` FROM companies WHERE owner_id = $1 ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var out []*company.Company

	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateCompany(ctx context.Context, c *company.Company) error {
	query := `
		UPDATE companies
		SET name = $1, type = $2, nipt = $3, address = $4, email = $5, phone = $6, logo_url = $7, updated_at = NOW()
		WHERE id = $8 AND owner_id = $9
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name, c.Type, c.NIPT, c.Address, c.Email, c.Phone, c.LogoURL, c.ID, c.OwnerID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return company.ErrNotFound
		}

		return fmt.Errorf("updating company: %w", err)
	}

	return nil
}

// DeleteCompany removes the company; its accounts, transactions, payroll
// stubs and departments go with it through ON DELETE CASCADE.
func (s *Store) DeleteCompany(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	if n == 0 {
		return company.ErrNotFound
	}

	return nil
}
