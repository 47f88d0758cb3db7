package tabular

import "strings"

// SplitNaive splits on every comma with no quote handling
// only safe for fixed shape tables whose cells never contain commas
func SplitNaive(line string) []string {
	return strings.Split(line, ",")
}

// SplitQuoted splits on commas outside double quotes
// a doubled quote inside a quoted section emits one literal quote
func SplitQuoted(line string) []string {
	var (
		out    []string
		cur    strings.Builder
		inside bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inside && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"':
			inside = !inside
		case c == ',' && !inside:
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(out, cur.String())
}
