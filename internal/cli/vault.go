package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/services"
	"github.com/spf13/cobra"
)

// VaultOptions holds flags for the vault commands.
type VaultOptions struct {
	*RootOptions
	File   string
	Reveal bool
}

// NewVaultCommand creates the vault command group.
func NewVaultCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VaultOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Create, show, update and remove vaults",
	}

	create := &cobra.Command{
		Use:   "create <code>",
		Short: "Create a vault from lines of text",
		Long: `Create a vault from lines of text.

Lines are read from --file, from stdin with --file -, or typed in until an
empty line. Blank lines are dropped and every line is trimmed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return createVault(cmd, opts, args[0])
		},
	}
	create.Flags().StringVarP(&opts.File, "file", "f", "", "read vault lines from a file (- for stdin)")

	show := &cobra.Command{
		Use:   "show <code>",
		Short: "Show a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showVault(cmd, opts, args[0])
		},
	}
	show.Flags().BoolVar(&opts.Reveal, "reveal", false, "print the stored lines")

	update := &cobra.Command{
		Use:   "update <code>",
		Short: "Replace the lines of a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateVault(cmd, opts, args[0])
		},
	}
	update.Flags().StringVarP(&opts.File, "file", "f", "", "read vault lines from a file (- for stdin)")

	remove := &cobra.Command{
		Use:   "remove <code>",
		Short: "Remove a vault with its cards and claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return removeVault(cmd, opts, args[0])
		},
	}

	cmd.AddCommand(create, show, update, remove)
	return cmd
}

func createVault(cmd *cobra.Command, opts *VaultOptions, code string) error {
	text, err := readStorage(opts.File, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	return runSession(cmd, opts.RootOptions, func(ctx context.Context, s *services.Session) error {
		v, err := s.CreateVault(ctx, code, text)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Vault #%s created with %d lines.\n", v.Code, v.LineCount)
		return nil
	})
}

func showVault(cmd *cobra.Command, opts *VaultOptions, code string) error {
	return runSession(cmd, opts.RootOptions, func(ctx context.Context, s *services.Session) error {
		v, err := s.GetVault(ctx, code)
		if err != nil {
			return vaultLookupError(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Vault #%s\n", v.Code)
		fmt.Fprintf(out, "  Lines:   %d\n", v.LineCount)
		fmt.Fprintf(out, "  Created: %s\n", v.CreatedAt.UTC().Format(time.RFC3339))
		fmt.Fprintf(out, "  Updated: %s\n", v.UpdatedAt.UTC().Format(time.RFC3339))
		if opts.Reveal && v.Storage != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, v.Storage)
		}
		return nil
	})
}

func updateVault(cmd *cobra.Command, opts *VaultOptions, code string) error {
	text, err := readStorage(opts.File, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	return runSession(cmd, opts.RootOptions, func(ctx context.Context, s *services.Session) error {
		v, err := s.GetVault(ctx, code)
		if err != nil {
			return vaultLookupError(err)
		}
		if services.NormalizeText(text) == v.Storage {
			fmt.Fprintf(cmd.OutOrStdout(), "Vault #%s: no changes made.\n", v.Code)
			return nil
		}
		if err := s.UpdateVault(ctx, v.ID, text); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Vault #%s updated.\n", v.Code)
		return nil
	})
}

func removeVault(cmd *cobra.Command, opts *VaultOptions, code string) error {
	return runSession(cmd, opts.RootOptions, func(ctx context.Context, s *services.Session) error {
		v, err := s.GetVault(ctx, code)
		if err != nil {
			return vaultLookupError(err)
		}
		refs, err := s.RemoveVault(ctx, v.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Vault #%s removed.\n", v.Code)
		for _, ref := range refs {
			fmt.Fprintf(out, "  delete card message %d in channel %d\n", ref.MessageRef, ref.ChannelRef)
		}
		return nil
	})
}

func vaultLookupError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return errUnknownVault
	}
	return err
}
