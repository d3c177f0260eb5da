package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Table names a tenant-scoped table that other rows may reference.
type Table string

const (
	Companies   Table = "companies"
	Accounts    Table = "accounts"
	Departments Table = "departments"
)

// Owned reports whether table holds the row id and that row belongs to
// ownerID. A missing row and a row of another owner look the same.
func Owned(ctx context.Context, db *sql.DB, table Table, ownerID, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ` + string(table) + ` WHERE id = $1 AND owner_id = $2)`

	var ok bool
	if err := db.QueryRowContext(ctx, query, id, ownerID).Scan(&ok); err != nil {
		return false, fmt.Errorf("checking %s ownership: %w", table, err)
	}

	return ok, nil
}
