// Package middleware adapts chi and go-chi/cors middleware and adds the
// request scope, panic recovery and access log the api runs behind
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"

	pstrings "streamdex/internal/platform/strings"
)

// Middleware wraps a handler
type Middleware = func(http.Handler) http.Handler

// chi middlewares that need no configuration
var (
	RequestID    Middleware = chimw.RequestID
	RealIP       Middleware = chimw.RealIP
	NoCache      Middleware = chimw.NoCache
	StripSlashes Middleware = chimw.StripSlashes
)

// Timeout cancels the request context after d and answers 504 if nothing was written
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Compress gzips and deflates responses at level for clients that accept it
func Compress(level int) Middleware { return chimw.Compress(level) }

// JSONOnly rejects request bodies that are not application/json with 415
func JSONOnly() Middleware { return chimw.AllowContentType("application/json") }

// Throttle answers 429 once limit requests are in flight
func Throttle(limit int) Middleware { return chimw.Throttle(limit) }

// CORSOptions is the part of go-chi/cors the api configures
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS fills unset lists with what the catalog routes need
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}
