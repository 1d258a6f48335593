// Package storetest provides test helpers for code that reads or writes speeches.
// The service never creates tables itself; tests apply Schema to a scratch database.
package storetest

import (
	"context"
	"database/sql"
	_ "embed"
	"testing"
)

// Schema is the reference DDL for the wedding_speech table.
//
//go:embed schema.sql
var Schema string

// ApplySchema creates the speech table on db.
func ApplySchema(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(), Schema); err != nil {
		t.Fatalf("storetest: apply schema: %v", err)
	}
}
