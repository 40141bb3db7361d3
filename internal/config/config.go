// Package config reads process configuration from the environment.
package config

import "os"

// Neo4j holds connection settings for the graph store.
type Neo4j struct {
	URI      string
	Username string
	Password string
	Database string
}

// Defaults holds fallback project/branch names used when a caller omits
// them.
type Defaults struct {
	Project string
	Branch  string
}

// Config is the full process configuration.
type Config struct {
	Neo4j    Neo4j
	Defaults Defaults
}

// Load reads configuration from the environment, applying local-dev
// defaults for anything unset.
func Load() Config {
	return Config{
		Neo4j: Neo4j{
			URI:      envOr("NEO4J_URI", "bolt://localhost:7687"),
			Username: envOr("NEO4J_USERNAME", "neo4j"),
			Password: os.Getenv("NEO4J_PASSWORD"),
			Database: envOr("NEO4J_DATABASE", "neo4j"),
		},
		Defaults: Defaults{
			Project: envOr("CODE_VALIDATOR_PROJECT", ""),
			Branch:  envOr("CODE_VALIDATOR_BRANCH", ""),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
