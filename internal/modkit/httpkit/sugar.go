package httpkit

import (
	"net/http"

	phttp "streamdex/internal/platform/net/http"
)

// Get mounts a bodiless handler whose result is wrapped in the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, phttp.Call(h)) }

// Post mounts a bodiless POST handler
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, phttp.Call(h)) }

// Delete mounts a bodiless DELETE handler
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.Call(h))
}

// PostJSON mounts a handler that receives a bound and validated JSON body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}
