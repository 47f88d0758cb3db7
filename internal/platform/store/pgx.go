package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// poolQuerier adapts a pgx pool to Querier
type poolQuerier struct{ p *pgxpool.Pool }

func (q poolQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	ct, err := q.p.Exec(ctx, sql, args...)
	return ct, err
}

func (q poolQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := q.p.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgxRows{rs}, nil
}

func (q poolQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return q.p.QueryRow(ctx, sql, args...)
}

func (q poolQuerier) Ping(ctx context.Context) error { return q.p.Ping(ctx) }

func (q poolQuerier) Close() { q.p.Close() }

// pgxRows adds the column header to pgx rows
type pgxRows struct{ pgx.Rows }

func (r pgxRows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, f := range fds {
		out[i] = f.Name
	}
	return out
}
