// Package module is the contract between API modules and whoever mounts them
package module

import phttp "streamdex/internal/platform/net/http"

// Module mounts routes and exposes a port set for cross wiring
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
