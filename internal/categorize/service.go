// Package categorize remembers how raw bank descriptions map to a ledger
// category and a cleaner description, and applies those rules to imports.
package categorize

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/transaction"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

// Rule matches any raw description containing Pattern, case-insensitively.
type Rule struct {
	Pattern     string
	Category    transaction.Category
	Description string
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	// FindRule returns the longest matching pattern, or nil when none match.
	FindRule(ctx context.Context, ownerID uuid.UUID, rawDescription string) (*Rule, error)
	CreateRule(ctx context.Context, ownerID uuid.UUID, rule Rule) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the rule matching rawDescription, or nil.
func (s *Service) Suggest(ctx context.Context, ownerID uuid.UUID, rawDescription string) (*Rule, error) {
	return s.repo.FindRule(ctx, ownerID, rawDescription)
}

// Learn stores a new rule. Description may be empty to keep the raw text.
func (s *Service) Learn(ctx context.Context, ownerID uuid.UUID, rule Rule) error {
	rule.Pattern = strings.TrimSpace(validate.Text(rule.Pattern))
	rule.Description = validate.Text(rule.Description)

	if rule.Pattern == "" {
		return validate.Fail("raw_pattern", "is required")
	}

	if _, err := transaction.ParseCategory(string(rule.Category)); err != nil {
		return validate.Fail("category", "%v", err)
	}

	return s.repo.CreateRule(ctx, ownerID, rule)
}

// Apply rewrites uncategorised rows (category empty or miscellaneous) using
// the owner's rules and reports how many rows matched.
func (s *Service) Apply(ctx context.Context, ownerID uuid.UUID, params []transaction.CreateParams) (int, error) {
	matched := 0

	for i := range params {
		p := &params[i]
		if p.Category != "" && p.Category != transaction.CategoryMiscellaneous {
			continue
		}

		rule, err := s.repo.FindRule(ctx, ownerID, p.Description)
		if err != nil {
			return matched, fmt.Errorf("row %d: %w", i+1, err)
		}

		if rule == nil {
			if p.Category == "" {
				p.Category = transaction.CategoryMiscellaneous
			}

			continue
		}

		p.Category = rule.Category
		if rule.Description != "" {
			p.Description = rule.Description
		}

		matched++
	}

	return matched, nil
}
