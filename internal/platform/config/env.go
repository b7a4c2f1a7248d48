// Package config loads process configuration from the environment. All
// variables the site reads carry the CHAPTER_WEB_ prefix; flags layered on
// top by the command packages override whatever the environment set.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target's env-tagged fields from the process environment.
// Unset variables fall back to their envDefault tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
