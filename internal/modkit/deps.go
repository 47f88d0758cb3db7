package modkit

import (
	"streamdex/internal/modkit/repokit"
	"streamdex/internal/platform/config"
	"streamdex/internal/platform/logger"
)

// Deps are shared by every module; PG is nil unless postgres is enabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.Queryer
}
