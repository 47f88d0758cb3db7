// Package repo provides tag table sources for the catalog
package repo

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"streamdex/internal/core/tabular"
	perr "streamdex/internal/platform/errors"
	"streamdex/internal/services/api/catalog/domain"
)

// File reads a delimited table from disk on every load
type File struct{ Path string }

// NewFile returns a file backed TableSource
func NewFile(path string) File { return File{Path: path} }

// Load reads and parses the file
func (f File) Load(ctx context.Context) (tabular.Table, error) {
	if err := ctx.Err(); err != nil {
		return tabular.Table{}, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tabular.Table{}, perr.NotFoundf("tag table %s not found", f.Path)
		}
		return tabular.Table{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read tag table %s", f.Path)
	}
	return tabular.Parse(string(b)), nil
}

// Empty is a TableSource with no rows, used when a table is not configured
type Empty struct{}

// Load returns an empty table
func (Empty) Load(context.Context) (tabular.Table, error) { return tabular.Table{}, nil }

// FromConfig picks a TableSource for a location string
// http(s) urls load remotely, anything else is a file path, blank is Empty
func FromConfig(loc string, h HTTPDoer) domain.TableSource {
	loc = strings.TrimSpace(loc)
	switch {
	case loc == "":
		return Empty{}
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return NewHTTP(loc, h)
	default:
		return NewFile(loc)
	}
}

var (
	_ domain.TableSource = File{}
	_ domain.TableSource = Empty{}
	_ domain.TableSource = (*HTTP)(nil)
)
