package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	// Register the remote libSQL driver under the name "libsql"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// openLibSQL connects to a remote libSQL endpoint, passing the token as the
// authToken query parameter the driver expects.
func openLibSQL(ctx context.Context, rawURL, authToken string) (*sql.DB, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("store: parse database url: %w", err)
	}
	q := u.Query()
	q.Set("authToken", authToken)
	u.RawQuery = q.Encode()

	db, err := sql.Open("libsql", u.String())
	if err != nil {
		return nil, fmt.Errorf("store: open libsql %s: %w", u.Host, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("store: ping libsql %s: %w", u.Host, err)
	}
	return db, nil
}
