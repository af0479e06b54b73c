package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	DialectSQLite = "sqlite"
	DialectMySQL  = "mysql"
)

// NormalizeDialect maps driver names onto a dialect; unknown names fall back to sqlite.
func NormalizeDialect(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "mysql":
		return DialectMySQL
	default:
		return DialectSQLite
	}
}

// HasTable reports whether table exists. Only an empty lookup means missing;
// any other failure is returned.
func HasTable(ctx context.Context, q QueryRower, dialect, table string) (bool, error) {
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ? LIMIT 1`
	if dialect == DialectMySQL {
		query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1`
	}

	var name sql.NullString
	err := q.QueryRowContext(ctx, query, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup table %s: %w", table, err)
	}
	return name.Valid && name.String != "", nil
}
