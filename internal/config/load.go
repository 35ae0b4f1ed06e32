package config

import (
	"github.com/spf13/pflag"
)

// Load builds a Config by applying defaults, then the JSON file named by the
// --config flag, then environment variables, and finally the flags set on
// the command line. The result is validated.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := applyFlags(fs, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
