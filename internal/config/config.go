// Package config handles configuration for linevault, including defaults,
// JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/dbx"
	"github.com/dmitrijs2005/linevault/internal/logging"
)

// Config holds runtime settings.
//
// Fields:
//   - Driver: database/sql driver, "sqlite" or "pgx".
//   - DatabaseDSN: SQLite file path or PostgreSQL DSN.
//   - SecretKey: process-wide key of the outer storage layer. When empty the
//     CLI asks for it on the terminal.
//   - LogFormat: "text", "json" or "zap".
//   - OperationTimeout: upper bound for one command.
//   - Debug: enables debug logging.
type Config struct {
	Driver           string
	DatabaseDSN      string
	SecretKey        string
	LogFormat        string
	OperationTimeout time.Duration
	Debug            bool
}

// LoadDefaults populates Config with local development defaults.
func (c *Config) LoadDefaults() {
	c.Driver = dbx.DriverSQLite
	c.DatabaseDSN = "vaults.db"
	c.SecretKey = ""
	c.LogFormat = logging.FormatText
	c.OperationTimeout = 10 * time.Second
	c.Debug = false
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if _, err := dbx.DialectFor(c.Driver); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		return fmt.Errorf("%w: database DSN is empty", common.ErrValidation)
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON, logging.FormatZap:
	default:
		return fmt.Errorf("%w: unknown log format %q", common.ErrValidation, c.LogFormat)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("%w: operation timeout must be positive", common.ErrValidation)
	}
	return nil
}
