package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/account"
	"github.com/VeliorGroup/fluxo/internal/database"
	"github.com/VeliorGroup/fluxo/internal/money"
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

const selectAccountColumns = `
	a.id, a.owner_id, a.company_id, a.name, a.currency, a.type, a.description, a.is_default,
	a.opening_balance, c.name AS company_name, a.created_at, a.updated_at
`

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var currency string

	var companyName sql.NullString

	if err := s.Scan(
		&a.ID, &a.OwnerID, &a.CompanyID, &a.Name, &currency, &a.Type, &a.Description, &a.IsDefault,
		&a.OpeningBalance, &companyName, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c, err := money.ParseCurrency(currency)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", a.ID, err)
	}

	a.Currency = c
	a.CompanyName = companyName.String

	return &a, nil
}

// clearDefault unsets the default flag on the company's other accounts so at
// most one account per company is the default.
func clearDefault(ctx context.Context, tx *sql.Tx, a *account.Account) error {
	query := `
		UPDATE accounts SET is_default = FALSE
		WHERE owner_id = $1 AND company_id = $2 AND id <> $3 AND is_default
	`

	if _, err := tx.ExecContext(ctx, query, a.OwnerID, a.CompanyID, a.ID); err != nil {
		return fmt.Errorf("clearing default account: %w", err)
	}

	return nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO accounts (owner_id, company_id, name, currency, type, description, is_default, opening_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		a.OwnerID, a.CompanyID, a.Name, a.Currency, a.Type, a.Description, a.IsDefault, a.OpeningBalance,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	if a.IsDefault {
		if err := clearDefault(ctx, tx, a); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		LEFT JOIN companies c ON a.company_id = c.id AND c.owner_id = a.owner_id
		WHERE a.id = $1 AND a.owner_id = $2`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		LEFT JOIN companies c ON a.company_id = c.id AND c.owner_id = a.owner_id
		WHERE a.owner_id = $1
		ORDER BY a.name`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var out []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE accounts
		SET company_id = $1, name = $2, currency = $3, type = $4, description = $5, is_default = $6,
			opening_balance = $7, updated_at = NOW()
		WHERE id = $8 AND owner_id = $9
		RETURNING updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		a.CompanyID, a.Name, a.Currency, a.Type, a.Description, a.IsDefault, a.OpeningBalance, a.ID, a.OwnerID,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.ErrNotFound
		}

		return fmt.Errorf("updating account: %w", err)
	}

	if a.IsDefault {
		if err := clearDefault(ctx, tx, a); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// DeleteAccount removes the account. Transactions booked against it keep
// their amounts and lose the account link (ON DELETE SET NULL).
func (s *Store) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	if n == 0 {
		return account.ErrNotFound
	}

	return nil
}

func (s *Store) CompanyOwned(ctx context.Context, ownerID, companyID uuid.UUID) (bool, error) {
	return database.Owned(ctx, s.db, database.Companies, ownerID, companyID)
}
