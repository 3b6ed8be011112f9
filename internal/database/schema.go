// Package database implements the ledger repositories on MySQL/MariaDB.
//
// FILE: schema.go
// PURPOSE: Embedded schema and the migration that applies it.
//
// KEY FUNCTIONS:
// - Schema: The schema SQL text
// - Statements: Splits the schema into executable statements
// - Migrate: Applies every statement
//
// RELATED FILES:
// - schema/schema.sql: Table definitions
// - store.go: Store
package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema/schema.sql
var schemaSQL string

// Schema returns the embedded schema
func Schema() string {
	return schemaSQL
}

// Statements splits SQL text into statements, dropping "--" comment lines
func Statements(sqlText string) []string {
	var sb strings.Builder
	for _, line := range strings.Split(sqlText, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	var statements []string
	for _, stmt := range strings.Split(sb.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	statements := Statements(schemaSQL)
	for i, stmt := range statements {
		if _, err := s.pool.ExecContext(ctx, stmt); err != nil {
			return i, fmt.Errorf("failed to apply statement %d: %w", i+1, err)
		}
	}
	return len(statements), nil
}
