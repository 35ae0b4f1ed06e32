package cli

import (
	"context"
	"io"

	"github.com/dmitrijs2005/linevault/internal/buildinfo"
	"github.com/dmitrijs2005/linevault/internal/config"
	"github.com/spf13/cobra"
)

// RootOptions holds the global flags shared by all commands.
type RootOptions struct {
	CommunityID int64
	OwnerID     int64
}

// NewRootCommand creates the root command for vaultctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vaultctl",
		Short: "Manage line vaults, claim cards and claims",
		Long: `vaultctl manages encrypted line vaults for a community.

Administrators store secret lines in a vault, publish cards that hand out a
fixed number of lines per claim, and members claim lines once per cool-down.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.BindFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().Int64Var(&opts.CommunityID, "community", 0, "community the session is scoped to")
	cmd.PersistentFlags().Int64Var(&opts.OwnerID, "owner", 0, "community owner id, keys the inner storage layer")

	cmd.AddCommand(NewVaultCommand(opts))
	cmd.AddCommand(NewCardCommand(opts))
	cmd.AddCommand(NewClaimCommand(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	})

	return cmd
}

// Execute runs vaultctl with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		cmd.PrintErrln("Error:", describe(err))
		return 1
	}
	return 0
}
