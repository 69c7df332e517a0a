package modkit

import (
	"foodscan/internal/modkit/repokit"
	"foodscan/internal/platform/config"
	"foodscan/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
