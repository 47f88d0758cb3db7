package stream

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"streamdex/internal/core/duration"
	"streamdex/internal/core/tabular"
)

// Schema names the structural columns of a tag table
// every other column is a free form tag
type Schema struct {
	URLColumn    string
	MarkerColumn string
	CountColumns []string
}

// PrimarySchema is the layout of the main tag table
func PrimarySchema() Schema {
	return Schema{
		URLColumn:    "stream_link",
		MarkerColumn: "zatsu_start",
		CountColumns: []string{"friend_count"},
	}
}

// SecondarySchema is the layout of the collab table, whose Collab column
// counts participants
func SecondarySchema() Schema {
	return Schema{
		URLColumn:    "stream_link",
		MarkerColumn: "zatsu_start",
		CountColumns: []string{"Collab", "friend_count"},
	}
}

// Reserved reports whether col carries structural meaning
func (s Schema) Reserved(col string) bool {
	if col == s.URLColumn || col == s.MarkerColumn {
		return true
	}
	for _, c := range s.CountColumns {
		if col == c {
			return true
		}
	}
	return false
}

// TagColumns returns the header columns that are tags, in header order
func (s Schema) TagColumns(header []string) []string {
	out := make([]string, 0, len(header))
	for _, h := range header {
		if h == "" || s.Reserved(h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// TagRow is one typed row of a tag table
type TagRow struct {
	VideoID   string
	SourceURL string
	Marker    string
	Count     string
	Tags      map[string]string
}

// MarkerMinutes returns the parsed marker, 0 when absent or malformed
func (r TagRow) MarkerMinutes() float64 { return duration.ParseMarker(r.Marker) }

// FriendCount returns the count column as a number, 1 when absent or unparseable
func (r TagRow) FriendCount() float64 {
	if v, ok := leadingFloat(r.Count); ok {
		return v
	}
	return 1
}

// PositiveCount reports whether the count column holds a number above zero
func (r TagRow) PositiveCount() bool {
	v, ok := leadingFloat(r.Count)
	return ok && v > 0
}

// NewTagRow types a parsed row; ok is false when no video id can be extracted
func NewTagRow(row tabular.Row, s Schema) (TagRow, bool) {
	src := row.Get(s.URLColumn)
	id, ok := ExtractVideoID(src)
	if !ok {
		return TagRow{}, false
	}
	tr := TagRow{
		VideoID:   id,
		SourceURL: src,
		Marker:    row.Get(s.MarkerColumn),
		Tags:      make(map[string]string, len(row)),
	}
	for _, c := range s.CountColumns {
		if v := row.Get(c); v != "" {
			tr.Count = v
			break
		}
	}
	for k, v := range row {
		if k == "" || s.Reserved(k) {
			continue
		}
		tr.Tags[k] = strings.TrimSpace(v)
	}
	return tr, true
}

// Rows types every row of t, dropping rows without a video id
func Rows(t tabular.Table, s Schema) []TagRow {
	out := make([]TagRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		if tr, ok := NewTagRow(r, s); ok {
			out = append(out, tr)
		}
	}
	return out
}

var leadingNumRE = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// leadingFloat reads the numeric prefix of s, so "3 people" counts as 3
func leadingFloat(s string) (float64, bool) {
	m := leadingNumRE.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
