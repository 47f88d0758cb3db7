// Package http serves liveness, readiness and build info under /meta
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"streamdex/internal/core/version"
	"streamdex/internal/modkit/httpkit"
	phttp "streamdex/internal/platform/net/http"
)

// Pinger is satisfied by stores that can be probed
type Pinger interface {
	Ping(stdctx.Context) error
}

// Loader reports whether the catalog has a reconciled set installed
type Loader interface {
	Loaded() bool
}

// Deps are the handler dependencies; nil probes are reported as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	Redis       any
	Catalog     Loader
}

// readyTimeout bounds all probes of one readiness request
const readyTimeout = 2 * time.Second

var now = time.Now

// check states
const (
	checkOK      = "ok"
	checkFail    = "fail"
	checkSkipped = "skipped"
	checkPending = "pending"
	checkUnknown = "unknown"
)

type probe struct {
	name string
	run  func(stdctx.Context) ReadyCheck
}

type handlers struct {
	deps   Deps
	probes []probe
}

// Register mounts health, ready, version and service
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, probes: []probe{
		{"pg", pinged("pg", d.PG)},
		{"redis", pinged("redis", d.Redis)},
		{"catalog", loaded(d.Catalog)},
	}}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"streamdex-api"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is the outcome of one dependency probe
type ReadyCheck struct {
	Name   string `json:"name"            example:"catalog"`
	Status string `json:"status"          example:"ok"` // ok fail skipped pending unknown
	Error  string `json:"error,omitempty" example:"connection refused"`
}

// ReadyResponse rolls the probes up into ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse is the service name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"streamdex-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Now: stamp(now())}, nil
}

// @Summary Readiness with dependency probes; 503 when any probe fails
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := ReadyResponse{Status: checkOK, Now: stamp(now())}
	for _, p := range h.probes {
		c := p.run(ctx)
		out.Checks = append(out.Checks, c)
		out.Status = rollup(out.Status, c.Status)
	}
	if out.Status == checkFail {
		return phttp.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// rollup folds one check into the overall status; fail sticks, anything but ok degrades
func rollup(overall, check string) string {
	switch {
	case overall == checkFail || check == checkFail:
		return checkFail
	case check == checkOK:
		return overall
	default:
		return "degraded"
	}
}

func pinged(name string, dep any) func(stdctx.Context) ReadyCheck {
	return func(ctx stdctx.Context) ReadyCheck {
		if dep == nil {
			return ReadyCheck{Name: name, Status: checkSkipped}
		}
		p, ok := dep.(Pinger)
		if !ok {
			return ReadyCheck{Name: name, Status: checkUnknown}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: checkFail, Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: checkOK}
	}
}

// loaded is pending until the first reconciled set is installed
func loaded(l Loader) func(stdctx.Context) ReadyCheck {
	return func(stdctx.Context) ReadyCheck {
		switch {
		case l == nil:
			return ReadyCheck{Name: "catalog", Status: checkSkipped}
		case l.Loaded():
			return ReadyCheck{Name: "catalog", Status: checkOK}
		default:
			return ReadyCheck{Name: "catalog", Status: checkPending}
		}
	}
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }
