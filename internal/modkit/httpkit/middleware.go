package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"streamdex/internal/platform/config"
	"streamdex/internal/platform/net/middleware"
)

// StackOptions tunes the per API middleware stack
type StackOptions struct {
	// CORSOrigins defaults to any origin when empty
	CORSOrigins []string
	// SlowRequest marks access log lines as warn, 0 disables
	SlowRequest time.Duration
	// Timeout bounds a request; reloads page through the whole channel so keep it generous
	Timeout time.Duration
	// MaxInFlight caps concurrent requests, 0 is unlimited
	MaxInFlight int
	// QuietPaths are access logged at debug
	QuietPaths []string
}

// StackFromConfig reads the API_ keys for the middleware stack
func StackFromConfig(cfg config.Conf) StackOptions {
	c := cfg.Prefix("API_")
	return StackOptions{
		CORSOrigins: c.MayCSV("CORS_ORIGINS", []string{"*"}),
		SlowRequest: c.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		Timeout:     c.MayDuration("TIMEOUT", 2*time.Minute),
		MaxInFlight: c.MayInt("MAX_IN_FLIGHT", 0),
		QuietPaths:  c.MayCSV("QUIET_PATHS", []string{"/api/v1/meta/health", "/api/v1/meta/ready"}),
	}
}

// CommonStack returns the baseline middleware slice for the versioned API
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 2 * time.Minute
	}
	stack := []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID,
		middleware.RealIP,
		middleware.RequestScope,

		// safety
		middleware.RecoverJSON,

		// catalog state changes on reload and tag cycles
		middleware.NoCache,

		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest, Quiet: o.QuietPaths}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes,
		middleware.JSONOnly(),
		middleware.Timeout(o.Timeout),
	}
	if o.MaxInFlight > 0 {
		stack = append(stack, middleware.Throttle(o.MaxInFlight))
	}
	return stack
}
