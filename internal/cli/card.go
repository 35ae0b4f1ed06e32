package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/services"
	"github.com/dmitrijs2005/linevault/internal/timex"
	"github.com/spf13/cobra"
)

// CardOptions holds flags for the card commands.
type CardOptions struct {
	*RootOptions
	ChannelRef   int64
	MessageRef   int64
	RequiredRole int64
	Allowance    int
	Cooldown     string
}

// NewCardCommand creates the card command group.
func NewCardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CardOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Publish, list and remove claim cards",
	}

	create := &cobra.Command{
		Use:   "create <vault-code>",
		Short: "Publish a claim card for a vault",
		Long: `Publish a claim card for a vault.

The cool-down is written as whitespace separated amounts with a unit:
s, m, h, d or y. Example: --cooldown "1d 5h 10m 30s".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return createCard(cmd, opts, args[0])
		},
	}
	create.Flags().Int64Var(&opts.ChannelRef, "channel", 0, "channel the card is published in")
	create.Flags().Int64Var(&opts.MessageRef, "message", 0, "message the card is published as")
	create.Flags().Int64Var(&opts.RequiredRole, "role", 0, "role a member needs to claim")
	create.Flags().IntVarP(&opts.Allowance, "allowance", "n", 1, "lines handed out per claim")
	create.Flags().StringVar(&opts.Cooldown, "cooldown", "0s", "time between claims of one member")
	_ = create.MarkFlagRequired("message")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the community's cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCards(cmd, opts)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <message-ref>",
		Short: "Remove a card and its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return removeCard(cmd, opts, args[0])
		},
	}

	cmd.AddCommand(create, list, remove)
	return cmd
}

func createCard(cmd *cobra.Command, opts *CardOptions, code string) error {
	cooldown, err := timex.ParseCooldown(opts.Cooldown)
	if err != nil {
		return err
	}

	return runSession(cmd, opts.RootOptions, func(ctx context.Context, s *services.Session) error {
		v, err := s.GetVault(ctx, code)
		if err != nil {
			return vaultLookupError(err)
		}

		c, err := s.CreateCard(ctx, v, services.CardParams{
			ChannelRef:      opts.ChannelRef,
			MessageRef:      opts.MessageRef,
			RequiredRole:    opts.RequiredRole,
			Allowance:       opts.Allowance,
			CooldownSeconds: cooldown,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Card created for message %d.\n", c.MessageRef)
		fmt.Fprintf(out, "  Vault:    #%s\n", v.Code)
		fmt.Fprintf(out, "  Lines:    %d\n", c.Allowance)
		fmt.Fprintf(out, "  Cooldown: %s\n", formatCooldown(c.CooldownSeconds))
		return nil
	})
}

func listCards(cmd *cobra.Command, opts *CardOptions) error {
	return runSession(cmd, opts.RootOptions, func(ctx context.Context, s *services.Session) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MESSAGE\tCHANNEL\tVAULT\tROLE\tLINES\tCOOLDOWN")

		n := 0
		for c, err := range s.Cards(ctx) {
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\n",
				c.MessageRef, c.ChannelRef, c.VaultID, c.RequiredRole, c.Allowance,
				formatCooldown(c.CooldownSeconds))
			n++
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No cards.")
			return nil
		}
		return w.Flush()
	})
}

func removeCard(cmd *cobra.Command, opts *CardOptions, ref string) error {
	messageRef, err := parseID("message-ref", ref)
	if err != nil {
		return err
	}

	return runSession(cmd, opts.RootOptions, func(ctx context.Context, s *services.Session) error {
		c, err := s.GetCard(ctx, messageRef)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return errUnknownCard
			}
			return err
		}
		if err := s.RemoveCard(ctx, c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Card for message %d removed.\n", c.MessageRef)
		return nil
	})
}

func formatCooldown(seconds int64) string {
	if seconds <= 0 {
		return "none"
	}
	return timex.FormatPeriod(time.Duration(seconds) * time.Second)
}
