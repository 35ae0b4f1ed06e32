package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by BindFlags.
const (
	FlagConfig    = "config"
	FlagDriver    = "driver"
	FlagDSN       = "dsn"
	FlagSecretKey = "secret-key"
	FlagLogFormat = "log-format"
	FlagTimeout   = "timeout"
	FlagDebug     = "debug"
)

// BindFlags registers the configuration flags on fs. Defaults are left
// empty: only flags set on the command line override other sources.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "path to a JSON configuration file")
	fs.String(FlagDriver, "", "database driver: sqlite or pgx (default sqlite)")
	fs.StringP(FlagDSN, "d", "", "database DSN (default vaults.db)")
	fs.StringP(FlagSecretKey, "s", "", "secret key for vault storage (prompted when unset)")
	fs.String(FlagLogFormat, "", "log format: text, json or zap (default text)")
	fs.Duration(FlagTimeout, 0, "timeout for one command (default 10s)")
	fs.Bool(FlagDebug, false, "enable debug logging")
}

// applyFlags copies the flags that were set explicitly onto config.
func applyFlags(fs *pflag.FlagSet, config *Config) error {
	stringFlags := map[string]*string{
		FlagDriver:    &config.Driver,
		FlagDSN:       &config.DatabaseDSN,
		FlagSecretKey: &config.SecretKey,
		FlagLogFormat: &config.LogFormat,
	}
	for name, dst := range stringFlags {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed(FlagTimeout) {
		v, err := fs.GetDuration(FlagTimeout)
		if err != nil {
			return err
		}
		config.OperationTimeout = v
	}
	if fs.Changed(FlagDebug) {
		v, err := fs.GetBool(FlagDebug)
		if err != nil {
			return err
		}
		config.Debug = v
	}
	return nil
}
