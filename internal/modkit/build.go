package modkit

import (
	"streamdex/internal/modkit/httpkit"
	str "streamdex/internal/platform/strings"
)

// Built is the resolved option set; later options win
type Built struct {
	Name   string
	Prefix string
	Ports  any
}

// Build applies opts in order
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{Name: c.name, Prefix: c.prefix, Ports: c.ports}
}

// Base implements Name and MountRoutes for modules that embed it
type Base struct {
	name     string
	prefix   string
	register func(httpkit.Router)
}

// NewBase binds the resolved name and prefix to the module's route registration
func NewBase(b Built, register func(httpkit.Router)) Base {
	return Base{name: b.Name, prefix: b.Prefix, register: register}
}

// Name returns the module name, panicking when none was set
func (b Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix returns the normalized mount path
func (b Base) Prefix() string { return str.MustPrefix(b.prefix) }

// MountRoutes mounts the module's routes under its prefix
func (b Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(sub httpkit.Router) {
		if b.register != nil {
			b.register(sub)
		}
	})
}
