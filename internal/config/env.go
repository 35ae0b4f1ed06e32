package config

import "os"

// Environment variables read by Load.
const (
	EnvSecretKey   = "LINEVAULT_SECRET_KEY"
	EnvDatabaseDSN = "LINEVAULT_DATABASE_DSN"
)

var lookupEnv = os.LookupEnv

func applyEnv(config *Config) {
	if v, ok := lookupEnv(EnvSecretKey); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := lookupEnv(EnvDatabaseDSN); ok && v != "" {
		config.DatabaseDSN = v
	}
}
