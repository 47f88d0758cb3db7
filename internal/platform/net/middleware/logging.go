package middleware

import (
	"context"
	"net/http"
	"slices"
	"time"

	"streamdex/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests taking at least Slow at warn; 0 disables it
	Slow time.Duration

	// Quiet paths are logged at debug, e.g. health probes
	Quiet []string
}

// captureWriter records the status and body size a handler wrote
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (cw *captureWriter) Unwrap() http.ResponseWriter { return cw.ResponseWriter }

var requestLog = func(ctx context.Context) *logger.Logger { return logger.C(ctx) }

// AccessLogZerolog logs one line per request through the request scoped logger
// 5xx log at error, slow requests at warn
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			log := requestLog(r.Context())
			slow := opt.Slow > 0 && elapsed >= opt.Slow

			var evt *zerolog.Event
			switch {
			case cw.status >= http.StatusInternalServerError:
				evt = log.Error()
			case slow:
				evt = log.Warn()
			case slices.Contains(opt.Quiet, r.URL.Path):
				evt = log.Debug()
			default:
				evt = log.Info()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Bool("slow", slow).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", cw.bytes).
				Msg("request done")
		})
	}
}
