package tags

import (
	"reflect"
	"sync"
	"testing"
)

func TestCycle(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register([]string{"Horror", "Funny"})

	want := []State{Include, Exclude, Unset, Include}
	for i, w := range want {
		got, ok := r.Cycle("Horror")
		if !ok || got != w {
			t.Fatalf("step %d: Cycle = %v,%v want %v", i, got, ok, w)
		}
	}
	if st, _ := r.State("Funny"); st != Unset {
		t.Fatalf("untouched tag changed: %v", st)
	}
}

func TestCycleUnknownIsNoop(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register([]string{"Horror"})
	before := r.Snapshot()
	if st, ok := r.Cycle("Nope"); ok || st != Unset {
		t.Fatalf("Cycle(unknown) = %v,%v", st, ok)
	}
	if !reflect.DeepEqual(before, r.Snapshot()) {
		t.Fatalf("snapshot changed after unknown cycle")
	}
}

func TestRegisterResets(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register([]string{"Horror", "Funny"})
	r.Cycle("Horror")
	r.Register([]string{"Horror", "Lore"})

	if got := r.Names(); !reflect.DeepEqual(got, []string{"Horror", "Lore"}) {
		t.Fatalf("names = %v", got)
	}
	if st, _ := r.State("Horror"); st != Unset {
		t.Fatalf("re-register must reset, got %v", st)
	}
	if _, ok := r.State("Funny"); ok {
		t.Fatalf("stale tag survived re-register")
	}
}

func TestSnapshotIsCopyAndLists(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register([]string{"b", "a", "c"})
	r.Set("a", Include)
	r.Set("b", Include)
	r.Set("c", Exclude)

	snap := r.Snapshot()
	snap["a"] = Unset
	if st, _ := r.State("a"); st != Include {
		t.Fatalf("snapshot aliases registry state")
	}
	snap = r.Snapshot()
	if got := snap.Included(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Included = %v", got)
	}
	if got := snap.Excluded(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Fatalf("Excluded = %v", got)
	}

	r.Reset()
	if len(r.Snapshot().Included()) != 0 {
		t.Fatalf("Reset left selections behind")
	}
	if r.Set("zzz", Include) {
		t.Fatalf("Set accepted unknown tag")
	}
}

func TestParseState(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]State{"": Unset, "include": Include, "EXCLUDE": Exclude, "unset": Unset} {
		got, err := ParseState(in)
		if err != nil || got != want {
			t.Errorf("ParseState(%q) = %v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseState("maybe"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestConcurrentCycle(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register([]string{"x"})
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Cycle("x")
			_ = r.Snapshot()
		}()
	}
	wg.Wait()
	// 30 steps of a 3 cycle lands back on unset
	if st, _ := r.State("x"); st != Unset {
		t.Fatalf("state after 30 cycles = %v", st)
	}
}
