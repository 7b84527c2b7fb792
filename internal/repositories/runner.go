package repositories

import (
	"database/sql"
	"strings"
)

// Runner is the query surface shared by *sql.DB and *sql.Tx, so repository
// methods can take part in a caller-owned transaction.
type Runner interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func inPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
