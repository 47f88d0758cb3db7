package modkit

// Option mutates build configuration for a module
type Option func(*buildCfg)

type buildCfg struct {
	name   string
	prefix string
	ports  any
}

// WithName sets the module name used in logs and panics
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix sets the path the module mounts under
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithPorts injects the port set a module consumes; its concrete type is owned by that module
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}
