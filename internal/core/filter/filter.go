// Package filter evaluates catalog queries against a reconciled stream set
package filter

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"streamdex/internal/core/normalize"
	"streamdex/internal/core/stream"
	"streamdex/internal/core/tags"
)

// SortKey orders the filtered result
type SortKey uint8

const (
	// SortNewest orders by publish time, latest first
	SortNewest SortKey = iota
	// SortOldest orders by publish time, earliest first
	SortOldest
	// SortShortest orders by total duration ascending
	SortShortest
	// SortLongest orders by total duration descending
	SortLongest
)

func (k SortKey) String() string {
	switch k {
	case SortOldest:
		return "oldest"
	case SortShortest:
		return "shortest"
	case SortLongest:
		return "longest"
	default:
		return "newest"
	}
}

// ParseSort maps a sort name to a SortKey, empty meaning newest
func ParseSort(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newest":
		return SortNewest, nil
	case "oldest":
		return SortOldest, nil
	case "shortest":
		return SortShortest, nil
	case "longest":
		return SortLongest, nil
	default:
		return SortNewest, fmt.Errorf("unknown sort key %q", s)
	}
}

// Window is an inclusive numeric range; a nil Max leaves the top open
type Window struct {
	Min float64
	Max *float64
}

// Between returns the closed window [lo, hi]
func Between(lo, hi float64) Window { return Window{Min: lo, Max: &hi} }

// AtLeast returns the window [lo, +inf)
func AtLeast(lo float64) Window { return Window{Min: lo} }

// Open reports whether the window has no upper bound
func (w Window) Open() bool { return w.Max == nil }

// Inverted reports a closed window whose top lies below its bottom
func (w Window) Inverted() bool { return !w.Open() && *w.Max < w.Min }

// Contains reports whether v lies in the window
func (w Window) Contains(v float64) bool {
	if v < w.Min {
		return false
	}
	return w.Open() || v <= *w.Max
}

// Query is one filter pass
type Query struct {
	Text     string
	Duration Window
	Mode     stream.Mode
	Friends  Window
	Sort     SortKey
}

// Result is the ordered subset plus its size
type Result struct {
	Streams []stream.Stream
	Count   int
}

// Apply filters and sorts streams; the input slice is never modified
func Apply(streams []stream.Stream, q Query, sel tags.Snapshot) Result {
	include := sel.Included()
	exclude := sel.Excluded()
	text := normalize.NewMatcher(q.Text)

	out := make([]stream.Stream, 0, len(streams))
	for _, s := range streams {
		if !match(s, q, text, include, exclude) {
			continue
		}
		out = append(out, s)
	}
	Sort(out, q.Sort)
	return Result{Streams: out, Count: len(out)}
}

func match(s stream.Stream, q Query, text normalize.Matcher, include, exclude []string) bool {
	if !text.Empty() && !text.Match(s.Title, s.ChannelName, s.DisplayDate()) {
		return false
	}
	if !q.Duration.Contains(s.Minutes(q.Mode)) {
		return false
	}
	for _, t := range include {
		if !Truthy(s.Tags[t]) {
			return false
		}
	}
	for _, t := range exclude {
		if Truthy(s.Tags[t]) {
			return false
		}
	}
	return q.Friends.Contains(s.FriendCount)
}

// Truthy reports whether a tag value counts as present
// numeric values must be above zero, any other non-empty text counts
func Truthy(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(n) {
		return n > 0
	}
	return true
}

// Sort orders streams in place; ties keep their current order
func Sort(streams []stream.Stream, key SortKey) {
	slices.SortStableFunc(streams, func(a, b stream.Stream) int {
		switch key {
		case SortOldest:
			return a.PublishedAt.Compare(b.PublishedAt)
		case SortShortest:
			return cmpFloat(a.TotalMinutes, b.TotalMinutes)
		case SortLongest:
			return cmpFloat(b.TotalMinutes, a.TotalMinutes)
		default:
			return b.PublishedAt.Compare(a.PublishedAt)
		}
	})
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
