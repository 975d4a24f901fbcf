// Package app assembles the dependency graph shared by every entrypoint.
package app

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/kognitoai/cohort/config"
	"github.com/kognitoai/cohort/filter"
	"github.com/kognitoai/cohort/logger"
)

// Dependencies returns the fx options providing the engine's dependency
// graph: logger, configuration and the filter pipeline.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.NopLogger,
		fx.Provide(
			logger.NewProductionLogger,
			logger.Sugar,
			newConfig,
			newPipeline,
		),
	}
}

func newConfig() (*config.Config, error) {
	cfg := config.New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newPipeline(log *zap.SugaredLogger, cfg *config.Config) *filter.Pipeline {
	return filter.NewPipeline(log, cfg.Policy())
}
