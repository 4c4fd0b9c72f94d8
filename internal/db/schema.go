package db

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryRower is the slice of *sql.DB the schema checks need.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable reports whether the table exists in the current database.
func HasTable(q QueryRower, table string) bool {
	var name string
	err := q.QueryRow(
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = DATABASE() AND table_name = ? LIMIT 1`,
		table,
	).Scan(&name)
	return err == nil
}

const createDocuments = `
CREATE TABLE IF NOT EXISTS documents (
  collection VARCHAR(64)  NOT NULL,
  id         CHAR(36)     NOT NULL,
  doc        JSON         NOT NULL,
  created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  PRIMARY KEY (collection, id)
) ENGINE=InnoDB`

// EnsureSchema creates the documents table on first boot so a fresh database
// works without running db/schema.sql by hand.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if HasTable(conn, "documents") {
		return nil
	}
	if _, err := conn.ExecContext(ctx, createDocuments); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	if _, err := conn.ExecContext(ctx,
		`CREATE INDEX idx_documents_created ON documents (collection, created_at, id)`,
	); err != nil {
		return fmt.Errorf("index documents table: %w", err)
	}
	return nil
}
