// Package api provides the HTTP API for the application
package api

import (
	"streamdex/internal/platform/config"
	"streamdex/internal/platform/logger"
	phttp "streamdex/internal/platform/net/http"
	"streamdex/internal/platform/store"

	"streamdex/internal/modkit"
	"streamdex/internal/modkit/httpkit"
	"streamdex/internal/modkit/module"
	"streamdex/internal/modkit/swaggerkit"

	catalogdom "streamdex/internal/services/api/catalog/domain"
	catalogmod "streamdex/internal/services/api/catalog/module"
	catalogrepo "streamdex/internal/services/api/catalog/repo"
	catalogsvc "streamdex/internal/services/api/catalog/service"
	metamod "streamdex/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Source         catalogdom.VideoSource
	TableHTTP      catalogrepo.HTTPDoer
	Redis          any
	Catalog        catalogmod.Options
	EnableSwagger  bool
	EnableProfiler bool
}

// Mounted exposes what the process entrypoint drives after mounting
type Mounted struct {
	Catalog *catalogsvc.Svc
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) Mounted {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// catalog owns the reconciled set; meta reports on it
	catalog := catalogmod.New(deps, opt.Catalog, modkit.WithPorts(catalogmod.Ports{
		Source: opt.Source,
		HTTP:   opt.TableHTTP,
	}))
	svc := module.MustPortsOf[catalogmod.Ports](catalog).Service

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Redis:   opt.Redis,
		Catalog: svc,
	}))

	mods := []module.Module{
		meta,
		catalog,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config)), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			logger.Named("api").Debug().Str("module", m.Name()).Msg("mounting")
			m.MountRoutes(api)
		}
	})

	return Mounted{Catalog: svc}
}
