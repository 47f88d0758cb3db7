// Package repokit provides the query surface repos bind to
package repokit

import "streamdex/internal/platform/store"

// Queryer is the minimal sql surface repos need
type Queryer = store.Querier

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a statement
	CommandTag = store.CommandTag
)
