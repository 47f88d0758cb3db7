// Package module wires meta endpoints into the API
package module

import (
	"time"

	"streamdex/internal/core/version"
	modkit "streamdex/internal/modkit"
	"streamdex/internal/modkit/httpkit"

	metahttp "streamdex/internal/services/api/meta/http"
)

// Ports are optional readiness targets injected by the api mount
type Ports struct {
	Redis   any
	Catalog metahttp.Loader
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	ports Ports
}

// New constructs a meta module; uptime counts from this call
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	ports, _ := b.Ports.(Ports)
	started := time.Now()

	return &Module{
		Base: modkit.NewBase(b, func(r httpkit.Router) {
			metahttp.Register(r, metahttp.Deps{
				ServiceName: version.Info().Service,
				StartedAt:   started,
				PG:          deps.PG,
				Redis:       ports.Redis,
				Catalog:     ports.Catalog,
			})
		}),
		ports: ports,
	}
}

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
