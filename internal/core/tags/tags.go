// Package tags tracks the discovered tag names and their three state selection
package tags

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// State is the selection state of one tag
type State uint8

const (
	// Unset means the tag does not constrain the result
	Unset State = iota
	// Include requires the tag to be present
	Include
	// Exclude drops streams carrying the tag
	Exclude
)

func (s State) String() string {
	switch s {
	case Include:
		return "include"
	case Exclude:
		return "exclude"
	default:
		return "unset"
	}
}

// Next returns the state after one cycle step
func (s State) Next() State {
	switch s {
	case Unset:
		return Include
	case Include:
		return Exclude
	default:
		return Unset
	}
}

// ParseState maps a state name to a State
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset", "none":
		return Unset, nil
	case "include":
		return Include, nil
	case "exclude":
		return Exclude, nil
	default:
		return Unset, fmt.Errorf("unknown tag state %q", s)
	}
}

// Snapshot is a read only copy of the selection
type Snapshot map[string]State

// Included returns tags marked include, sorted
func (s Snapshot) Included() []string { return s.with(Include) }

// Excluded returns tags marked exclude, sorted
func (s Snapshot) Excluded() []string { return s.with(Exclude) }

func (s Snapshot) with(want State) []string {
	var out []string
	for name, st := range s {
		if st == want {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Registry owns tag names and their selection, safe for concurrent use
type Registry struct {
	mu     sync.RWMutex
	order  []string
	states map[string]State
}

// New returns an empty registry
func New() *Registry {
	return &Registry{states: map[string]State{}}
}

// Register replaces the tracked names, every state starting unset
func (r *Registry) Register(names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = r.order[:0]
	r.states = make(map[string]State, len(names))
	r.trackLocked(names)
}

func (r *Registry) trackLocked(names []string) {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := r.states[n]; ok {
			continue
		}
		r.states[n] = Unset
		r.order = append(r.order, n)
	}
}

// Cycle advances name unset -> include -> exclude -> unset
// unknown names are ignored and report ok=false
func (r *Registry) Cycle(name string) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.states[name]
	if !ok {
		return Unset, false
	}
	next := cur.Next()
	r.states[name] = next
	return next, true
}

// Set forces the state of a known tag
func (r *Registry) Set(name string, st State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.states[name]; !ok {
		return false
	}
	r.states[name] = st
	return true
}

// State returns the state of name
func (r *Registry) State(name string) (State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.states[name]
	return st, ok
}

// Reset clears every selection back to unset
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n := range r.states {
		r.states[n] = Unset
	}
}

// Names returns tag names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Snapshot copies the current selection
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(Snapshot, len(r.states))
	for n, st := range r.states {
		out[n] = st
	}
	return out
}
