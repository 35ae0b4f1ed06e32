package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/linevault/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept both "10s" style strings and integer nanoseconds.
type JsonConfig struct {
	Driver           string         `json:"driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	LogFormat        string         `json:"log_format"`
	OperationTimeout timex.Duration `json:"operation_timeout"`
	Debug            *bool          `json:"debug"`
}

// loadJSON overlays the values present in the file onto config. Absent or
// empty fields keep their current value.
func loadJSON(path string, config *Config) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.Driver != "" {
		config.Driver = c.Driver
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
	if c.OperationTimeout.Duration != 0 {
		config.OperationTimeout = c.OperationTimeout.Duration
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
	return nil
}
