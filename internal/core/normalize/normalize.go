// Package normalize folds text into a comparable search key
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove format characters such as zero-width joiners
// 5 Width fold fullwidth to ASCII
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains, a chain is stateful and not shareable
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// Fold returns the search key for s
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Contains reports whether needle occurs in haystack ignoring case and width
// an empty needle always matches
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// Matcher folds a needle once for repeated Contains checks
type Matcher struct {
	needle string
}

// NewMatcher prepares needle
func NewMatcher(needle string) Matcher { return Matcher{needle: Fold(needle)} }

// Empty reports whether the matcher accepts everything
func (m Matcher) Empty() bool { return m.needle == "" }

// Match reports whether any of fields contains the needle
func (m Matcher) Match(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), m.needle) {
			return true
		}
	}
	return false
}
