// Package pg opens a pgx pool and waits for the server to answer
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	perr "streamdex/internal/platform/errors"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	AppName  string

	// ConnectRetries is the number of pings tried before Open gives up
	ConnectRetries int
	PingTimeout    time.Duration

	// Tracer is installed on every connection when set
	Tracer pgx.QueryTracer
}

const (
	defaultRetries     = 6
	defaultPingTimeout = 3 * time.Second
	firstBackoff       = 150 * time.Millisecond
	maxBackoff         = 2 * time.Second
)

var (
	newPool = pgxpool.NewWithConfig
	ping    = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
)

// Open builds the pool and blocks until a ping succeeds or retries run out
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "parse postgres url")
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.Tracer != nil {
		pcfg.ConnConfig.Tracer = cfg.Tracer
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "create postgres pool")
	}
	if err := waitReady(ctx, pool, cfg); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func waitReady(ctx context.Context, pool *pgxpool.Pool, cfg Config) error {
	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = defaultRetries
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	backoff := firstBackoff
	var last error
	for attempt := 1; attempt <= retries; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx, pool)
		cancel()
		if last == nil {
			return nil
		}
		if attempt == retries {
			break
		}
		select {
		case <-ctx.Done():
			return perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "postgres not ready")
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
	return perr.Wrapf(last, perr.ErrorCodeUnavailable, "postgres not ready after %d attempts", retries)
}
