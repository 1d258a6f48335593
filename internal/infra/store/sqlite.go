package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Register the modernc sqlite driver under the name "sqlite"
	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// openSQLite opens (or creates) a local SQLite database and configures it:
//   - WAL journal mode (concurrent reads during writes)
//   - 5-second busy timeout (prevents SQLITE_BUSY under burst writes)
//   - synchronous=NORMAL (safe for WAL, faster than FULL)
//
// path may carry a "file:" prefix. The parent directory must exist.
func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimPrefix(strings.TrimPrefix(path, "file://"), "file:")
	if path != memoryPath {
		dir := filepath.Dir(path)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return nil, fmt.Errorf("store: parent directory %q does not exist", dir)
		}
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %q: %w", path, err)
	}

	if path == memoryPath {
		// :memory: databases are per-connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("store: ping sqlite %q: %w", path, err)
	}
	return db, nil
}
