package app

import (
	"log/slog"

	"github.com/transitstats/mta-ridership/internal/appconf"
	"github.com/transitstats/mta-ridership/internal/ridership"
)

// Application holds the dependencies for our HTTP handlers, helpers and middleware.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Data    *ridership.Dataset
	Metrics ridership.Metrics
}

// New builds an Application around a loaded dataset, memoizing derivations in an LRU sized
// by the configuration.
func New(cfg appconf.Config, logger *slog.Logger, data *ridership.Dataset) *Application {
	deriver := ridership.NewDeriver(data,
		ridership.WithZeroPolicy(cfg.Policy()),
		ridership.WithReferenceMode(cfg.Reference()),
	)

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Data:    data,
		Metrics: ridership.NewCachedDeriver(deriver, cfg.CacheSize, cfg.CacheTTL),
	}
}

// TrendWindow is the default year range for trend series.
func (a *Application) TrendWindow() (int, int) {
	return a.Config.TrendWindow(a.Data.Years())
}
