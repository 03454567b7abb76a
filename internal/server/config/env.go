package config

import "github.com/caarlos0/env/v10"

// parseEnv overlays values from the process environment onto cfg. Variables
// that are not set leave the corresponding fields untouched, so the JSON and
// default layers below survive.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
