package repo

import (
	"context"
	"strings"

	"streamdex/internal/core/tabular"
	"streamdex/internal/modkit/repokit"
	perr "streamdex/internal/platform/errors"
	"streamdex/internal/services/api/catalog/domain"

	"github.com/jackc/pgx/v5"
)

type (
	// PG binds a tag table stored as a plain postgres table, one column per header cell
	PG struct {
		Table   string
		OrderBy string
	}

	// pgTable is a bound PG source
	pgTable struct {
		q     repokit.Queryer
		table string
		order string
	}
)

// NewPG creates a Postgres table source binder; orderBy may be blank
func NewPG(table, orderBy string) repokit.Binder[domain.TableSource] {
	return PG{Table: table, OrderBy: orderBy}
}

// Bind binds a Postgres queryer to the table source
func (p PG) Bind(q repokit.Queryer) domain.TableSource {
	return &pgTable{q: q, table: p.Table, order: p.OrderBy}
}

// Load reads the header with a zero row probe then selects every column as text
func (t *pgTable) Load(ctx context.Context) (tabular.Table, error) {
	if strings.TrimSpace(t.table) == "" {
		return tabular.Table{}, perr.InvalidArgf("tag table name is required")
	}
	header, err := t.columns(ctx)
	if err != nil {
		return tabular.Table{}, err
	}
	if len(header) == 0 {
		return tabular.Table{}, nil
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = "coalesce(" + pgx.Identifier{h}.Sanitize() + "::text, '')"
	}
	sql := "select " + strings.Join(cols, ", ") + " from " + ident(t.table)
	if t.order != "" {
		sql += " order by " + ident(t.order)
	}

	rows, err := t.q.Query(ctx, sql)
	if err != nil {
		return tabular.Table{}, perr.FromPostgresf(err, "load tag table %s", t.table)
	}
	defer rows.Close()

	out := tabular.Table{Header: header}
	for rows.Next() {
		vals := make([]string, len(header))
		ptrs := make([]any, len(header))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return tabular.Table{}, perr.FromPostgresf(err, "scan tag table %s", t.table)
		}
		row := make(tabular.Row, len(header))
		for i, col := range header {
			row[col] = strings.TrimSpace(vals[i])
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return tabular.Table{}, perr.FromPostgresf(err, "iterate tag table %s", t.table)
	}
	return out, nil
}

func (t *pgTable) columns(ctx context.Context) ([]string, error) {
	rows, err := t.q.Query(ctx, "select * from "+ident(t.table)+" limit 0")
	if err != nil {
		return nil, perr.FromPostgresf(err, "probe tag table %s", t.table)
	}
	header := rows.Columns()
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgresf(err, "probe tag table %s", t.table)
	}
	return header, nil
}

// ident quotes a possibly schema qualified identifier
func ident(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
