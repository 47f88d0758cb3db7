package repo

import (
	"context"
	"strings"
	"testing"

	"streamdex/internal/modkit/repokit"
	perr "streamdex/internal/platform/errors"
	"streamdex/internal/platform/store"
)

// fakeRows serves string rows in column order
type fakeRows struct {
	cols []string
	data [][]string
	i    int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	for j, d := range dest {
		*(d.(*string)) = r.data[r.i-1][j]
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return r.cols }

type fakeQueryer struct {
	cols  []string
	data  [][]string
	err   error
	calls []string
}

func (q *fakeQueryer) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, nil
}

func (q *fakeQueryer) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	q.calls = append(q.calls, sql)
	if q.err != nil {
		return nil, q.err
	}
	if strings.HasSuffix(sql, "limit 0") {
		return &fakeRows{cols: q.cols}, nil
	}
	return &fakeRows{cols: q.cols, data: q.data}, nil
}

func (q *fakeQueryer) QueryRow(context.Context, string, ...any) store.Row { return nil }

var _ repokit.Queryer = (*fakeQueryer)(nil)

func TestPG_Load(t *testing.T) {
	q := &fakeQueryer{
		cols: []string{"stream_link", "zatsu_start", "Visual Novel"},
		data: [][]string{
			{"https://youtu.be/aaaaaaaaaaa", " 0:45:00 ", "1"},
			{"https://youtu.be/bbbbbbbbbbb", "", ""},
		},
	}

	tbl, err := NewPG("public.stream_tags", "id").Bind(q).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tbl.Header) != 3 || len(tbl.Rows) != 2 {
		t.Fatalf("got header=%v rows=%d", tbl.Header, len(tbl.Rows))
	}
	if got := tbl.Rows[0]["zatsu_start"]; got != "0:45:00" {
		t.Fatalf("zatsu_start = %q, want trimmed", got)
	}
	if got := tbl.Rows[0]["Visual Novel"]; got != "1" {
		t.Fatalf("Visual Novel = %q", got)
	}

	if len(q.calls) != 2 {
		t.Fatalf("calls = %v", q.calls)
	}
	sel := q.calls[1]
	for _, want := range []string{`"public"."stream_tags"`, `coalesce("Visual Novel"::text, '')`, `order by "id"`} {
		if !strings.Contains(sel, want) {
			t.Fatalf("select %q missing %q", sel, want)
		}
	}
}

func TestPG_EmptyTableName(t *testing.T) {
	_, err := NewPG(" ", "").Bind(&fakeQueryer{}).Load(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want InvalidArgument, got %v", err)
	}
}

func TestPG_NoColumns(t *testing.T) {
	q := &fakeQueryer{}
	tbl, err := NewPG("stream_tags", "").Bind(q).Load(context.Background())
	if err != nil || len(tbl.Rows) != 0 {
		t.Fatalf("got %+v %v", tbl, err)
	}
	if len(q.calls) != 1 {
		t.Fatalf("expected only the probe, got %v", q.calls)
	}
}

func TestPG_QueryError(t *testing.T) {
	q := &fakeQueryer{err: perr.Unavailablef("connection refused")}
	_, err := NewPG("stream_tags", "").Bind(q).Load(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
}
