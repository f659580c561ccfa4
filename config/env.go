package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV. CI=true always selects the ci environment.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch env := Environment(strings.ToLower(os.Getenv("ENV"))); env {
	case Production, Test, Development:
		return env
	default:
		return Development
	}
}

func (e Environment) IsProduction() bool {
	return e == Production
}

// IsLocal reports whether the process runs on a developer machine, where
// text logs and gin debug output are preferred.
func (e Environment) IsLocal() bool {
	return e == Development || e == ""
}
