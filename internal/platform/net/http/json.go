package http

import (
	"net/http"

	"streamdex/internal/platform/net/http/bind"
)

// Call adapts a bodiless handler; a returned Response is written as is
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}

// JSONHandler binds and validates a JSON body of type T before calling fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Call(func(r *http.Request) (any, error) {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}
