// Package httpkit is what modules import for routing and handler sugar,
// so they never reach into platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "streamdex/internal/platform/net/http"
)

type (
	// Envelope is the response body every handler is wrapped in
	Envelope = phttp.Envelope

	// Handler is the route handler shape
	Handler = phttp.Handler

	// Router is the routing surface modules mount against
	Router = phttp.Router
)

// Param returns a named path parameter captured by the router
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }
