// Package tabular parses comma separated tag tables into header keyed rows
package tabular

import "strings"

// Splitter splits one line into cells
type Splitter func(line string) []string

// Row maps a trimmed header name to its cell value
type Row map[string]string

// Get returns the trimmed value for col, "" when absent
func (r Row) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Table is a parsed tag table
type Table struct {
	Header []string
	Rows   []Row
}

// Len returns the number of data rows
func (t Table) Len() int { return len(t.Rows) }

// Has reports whether the header declares col
func (t Table) Has(col string) bool {
	for _, h := range t.Header {
		if h == col {
			return true
		}
	}
	return false
}

// Parse parses text with the quote aware splitter
func Parse(text string) Table {
	return ParseWith(text, SplitQuoted)
}

// ParseWith parses text using split for every line
// parsing is total: malformed rows are padded or truncated to the header width
func ParseWith(text string, split Splitter) Table {
	if split == nil {
		split = SplitQuoted
	}
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return Table{}
	}

	rawHeader := split(lines[0])
	header := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := split(line)
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

func nonBlankLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
