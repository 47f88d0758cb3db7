// Package module wires the catalog into the API using modkit
package module

import (
	"streamdex/internal/core/stream"
	modkit "streamdex/internal/modkit"
	"streamdex/internal/modkit/httpkit"
	"streamdex/internal/services/api/catalog/domain"
	cataloghttp "streamdex/internal/services/api/catalog/http"
	catalogrepo "streamdex/internal/services/api/catalog/repo"
	catalogsvc "streamdex/internal/services/api/catalog/service"
)

// Ports are the cross module seams the catalog consumes and exposes
type Ports struct {
	// Source is required when building the module
	Source domain.VideoSource
	// HTTP is used by url table sources, nil for a default client
	HTTP catalogrepo.HTTPDoer
	// Service is filled by New for other modules and the process entrypoint
	Service *catalogsvc.Svc
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	ports Ports
}

// New constructs a catalog module; Ports.Source must be injected via modkit.WithPorts
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("catalog"), modkit.WithPrefix("/catalog")}, opts...)...)

	ports, _ := b.Ports.(Ports)
	o := merge(FromConfig(deps.Cfg), overrides)

	svc := catalogsvc.New(ports.Source, catalogsvc.Config{
		ChannelID:       o.ChannelID,
		Primary:         tableSource(deps, o, o.PrimaryLoc, o.PGPrimaryTable, ports.HTTP),
		Secondary:       tableSource(deps, o, o.SecondaryLoc, o.PGSecondaryTable, ports.HTTP),
		PrimarySchema:   stream.PrimarySchema(),
		SecondarySchema: o.secondarySchema(),
	}, deps.Log)
	ports.Service = svc

	return &Module{
		Base:  modkit.NewBase(b, func(r httpkit.Router) { cataloghttp.Register(r, svc) }),
		ports: ports,
	}
}

// tableSource picks pg when configured and a pool is present, otherwise a file or url
func tableSource(deps modkit.Deps, o Options, loc, table string, h catalogrepo.HTTPDoer) domain.TableSource {
	if o.Source == "pg" && deps.PG != nil && table != "" {
		return catalogrepo.NewPG(table, o.PGOrderBy).Bind(deps.PG)
	}
	return catalogrepo.FromConfig(loc, h)
}

// merge applies non-zero overrides over config defaults
func merge(base, over Options) Options {
	if over.ChannelID != "" {
		base.ChannelID = over.ChannelID
	}
	if over.PrimaryLoc != "" {
		base.PrimaryLoc = over.PrimaryLoc
	}
	if over.SecondaryLoc != "" {
		base.SecondaryLoc = over.SecondaryLoc
	}
	if over.Source != "" {
		base.Source = over.Source
	}
	if over.PGPrimaryTable != "" {
		base.PGPrimaryTable = over.PGPrimaryTable
	}
	if over.PGSecondaryTable != "" {
		base.PGSecondaryTable = over.PGSecondaryTable
	}
	if over.PGOrderBy != "" {
		base.PGOrderBy = over.PGOrderBy
	}
	if len(over.CountColumns) > 0 {
		base.CountColumns = over.CountColumns
	}
	return base
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
