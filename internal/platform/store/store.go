// Package store opens the optional postgres pool that tag tables can be read from
package store

import (
	"context"

	"streamdex/internal/platform/logger"
	"streamdex/internal/platform/store/pg"
)

// Row exposes the scan contract of a single row
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes iteration, scanning and the result header of a query
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// Querier is the sql surface repos use
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Store holds the optional backends; the zero value has none
type Store struct {
	Log logger.Logger

	// PG is nil when postgres is not configured
	PG Querier
}

// Option mutates Store during Open
type Option func(*Store)

// WithLogger sets the logger backends trace through
func WithLogger(log logger.Logger) Option { return func(s *Store) { s.Log = log } }

// Open connects the backends enabled in cfg and waits for them to answer
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}
	if !cfg.PG.Enabled {
		return s, nil
	}

	pc := pg.Config{
		URL:            cfg.PG.URL,
		MaxConns:       cfg.PG.MaxConns,
		AppName:        cfg.AppName,
		ConnectRetries: cfg.PG.ConnectRetries,
		PingTimeout:    cfg.PG.PingTimeout,
	}
	if cfg.PG.LogSQL || cfg.PG.SlowQueryMs > 0 {
		pc.Tracer = pg.NewTracer(s.Log, cfg.PG.LogSQL, cfg.PG.slow())
	}
	pool, err := pg.Open(ctx, pc)
	if err != nil {
		return nil, err
	}
	s.PG = poolQuerier{p: pool}
	return s, nil
}

// Ping checks every configured backend
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.PG.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases every configured backend; safe on a nil or empty store
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}
