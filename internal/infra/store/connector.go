// Package store is the database access layer: a lazily opened, shared
// connection handle, pure statement builders and the speech repository.
//
// Remote URLs (libsql://, https://, http://, wss://, ws://) go through the
// libSQL driver; anything else is treated as a local SQLite path.
package store

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/matiasleandrokruk/speechgate/internal/apperrors"
	"github.com/matiasleandrokruk/speechgate/internal/infra/config"
)

type openFunc func(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error)

// Connector owns the single shared *sql.DB. The handle is opened on the first
// successful DB call and reused afterwards; failed opens are not cached.
type Connector struct {
	cfg  config.DatabaseConfig
	open openFunc

	mu sync.Mutex
	db *sql.DB
}

// NewConnector validates cfg and returns a Connector. It does not touch the network.
// A blank URL or token is a configuration error.
func NewConnector(cfg config.DatabaseConfig) (*Connector, error) {
	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.AuthToken = strings.TrimSpace(cfg.AuthToken)
	if cfg.URL == "" {
		return nil, apperrors.New(apperrors.ErrCodeConfiguration, config.EnvKeyDatabaseURL+" is not defined")
	}
	if cfg.AuthToken == "" {
		return nil, apperrors.New(apperrors.ErrCodeConfiguration, config.EnvKeyDatabaseAuthToken+" is not defined")
	}
	return &Connector{cfg: cfg, open: openByScheme}, nil
}

// DB returns the shared handle, opening it on first use.
func (c *Connector) DB(ctx context.Context) (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}
	db, err := c.open(ctx, c.cfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "open database", err)
	}
	c.db = db
	return db, nil
}

// Close closes the handle if it was opened.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

var remoteSchemes = []string{"libsql://", "https://", "http://", "wss://", "ws://"}

func isRemote(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

func openByScheme(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if isRemote(cfg.URL) {
		return openLibSQL(ctx, cfg.URL, cfg.AuthToken)
	}
	return openSQLite(ctx, cfg.URL)
}
