package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/kognitoai/cohort/filter"
)

type Config struct {
	// ReferencePolicy decides whether rules that cannot be resolved (unknown
	// cohort references, operators unsupported for the column type) match or
	// exclude records. "open" preserves the legacy include-by-default
	// behavior; "closed" is the safer screening default.
	ReferencePolicy string `envconfig:"COHORT_REFERENCE_POLICY" default:"open"`

	// ExcludeDirtyData removes records with missing tracked fields before
	// rule evaluation on every pipeline run, regardless of per-filter flags.
	ExcludeDirtyData bool `envconfig:"COHORT_EXCLUDE_DIRTY_DATA" default:"false"`
}

func New() *Config {
	return &Config{}
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

func (c *Config) Policy() filter.ReferencePolicy {
	if c.ReferencePolicy == string(filter.PolicyFailClosed) {
		return filter.PolicyFailClosed
	}
	return filter.PolicyFailOpen
}
