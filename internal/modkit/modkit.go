// Package modkit assembles API modules from shared deps and options
package modkit

import "streamdex/internal/modkit/module"

// Module is the surface the api mounts; see module.Module
type Module = module.Module
