package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/linevault/internal/config"
	"github.com/dmitrijs2005/linevault/internal/cryptox"
	"github.com/dmitrijs2005/linevault/internal/logging"
	"github.com/dmitrijs2005/linevault/internal/services"
	"github.com/spf13/cobra"
)

// runSession loads the configuration, connects to the database and runs fn
// inside one session bounded by the operation timeout.
func runSession(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, s *services.Session) error) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogFormat, cmd.ErrOrStderr(), cfg.Debug)
	if err != nil {
		return err
	}

	secret := cfg.SecretKey
	if secret == "" {
		pw, err := GetPassword(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("read secret key: %w", err)
		}
		secret = string(pw)
		cryptox.Wipe(pw)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.OperationTimeout)
	defer cancel()

	gw, err := services.Connect(ctx, cfg.Driver, cfg.DatabaseDSN, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := gw.Close(); cerr != nil {
			log.Warn(ctx, "closing database", "error", cerr)
		}
	}()

	return gw.WithSession(ctx, opts.CommunityID, opts.OwnerID, secret, fn)
}
