package repokit

import (
	"context"
	"testing"
)

type fakeQ struct{ name string }

func (f *fakeQ) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (f *fakeQ) Query(context.Context, string, ...any) (Rows, error)      { return nil, nil }
func (f *fakeQ) QueryRow(context.Context, string, ...any) Row             { return nil }

type tableRepo struct{ q Queryer }

func TestBindFunc(t *testing.T) {
	t.Parallel()

	var b Binder[tableRepo] = BindFunc[tableRepo](func(q Queryer) tableRepo { return tableRepo{q: q} })

	a, c := &fakeQ{name: "a"}, &fakeQ{name: "c"}
	if got := b.Bind(a); got.q != a {
		t.Fatalf("bound to %v, want a", got.q)
	}
	if got := b.Bind(c); got.q != c {
		t.Fatalf("bound to %v, want c", got.q)
	}
}
