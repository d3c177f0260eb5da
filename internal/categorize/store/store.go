package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/categorize"
	"github.com/VeliorGroup/fluxo/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindRule(ctx context.Context, ownerID uuid.UUID, rawDescription string) (*categorize.Rule, error) {
	query := `
		SELECT raw_pattern, category, preferred_description
		FROM category_rules
		WHERE owner_id = $1 AND $2 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var rule categorize.Rule

	var category string

	err := s.db.QueryRowContext(ctx, query, ownerID, rawDescription).Scan(&rule.Pattern, &category, &rule.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding rule: %w", err)
	}

	if rule.Category, err = transaction.ParseCategory(category); err != nil {
		return nil, fmt.Errorf("rule %q: %w", rule.Pattern, err)
	}

	return &rule, nil
}

func (s *Store) CreateRule(ctx context.Context, ownerID uuid.UUID, rule categorize.Rule) error {
	query := `
		INSERT INTO category_rules (owner_id, raw_pattern, category, preferred_description, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	if _, err := s.db.ExecContext(ctx, query, ownerID, rule.Pattern, rule.Category, rule.Description); err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}
