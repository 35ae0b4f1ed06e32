package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/linevault/internal/common"
	"github.com/dmitrijs2005/linevault/internal/services"
	"github.com/spf13/cobra"
)

// ClaimOptions holds flags for the claim command.
type ClaimOptions struct {
	*RootOptions
	MemberID int64
	Roles    []int64
}

// NewClaimCommand creates the claim command.
func NewClaimCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClaimOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "claim <message-ref>",
		Short: "Claim lines from a card on behalf of a member",
		Long: `Claim lines from a card on behalf of a member.

The member must hold the card's required role, passed with --roles.

Example:
  vaultctl claim 1200 --member 77 --roles 300,301`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return claim(cmd, opts, args[0])
		},
	}
	cmd.Flags().Int64Var(&opts.MemberID, "member", 0, "member claiming the lines")
	cmd.Flags().Int64SliceVar(&opts.Roles, "roles", nil, "roles the member holds")
	_ = cmd.MarkFlagRequired("member")

	return cmd
}

func claim(cmd *cobra.Command, opts *ClaimOptions, ref string) error {
	messageRef, err := parseID("message-ref", ref)
	if err != nil {
		return err
	}

	return runSession(cmd, opts.RootOptions, func(ctx context.Context, s *services.Session) error {
		card, err := s.GetCard(ctx, messageRef)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return errUnknownCard
			}
			return err
		}
		if !slices.Contains(opts.Roles, card.RequiredRole) {
			return errMissingRole
		}

		res, err := s.Claim(ctx, opts.MemberID, card)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch r := res.(type) {
		case services.Lines:
			fmt.Fprintln(out, "Claimed!")
			for _, line := range r {
				fmt.Fprintln(out, line)
			}
		case services.WaitFor:
			fmt.Fprintf(out, "You have reached the maximum limit.\nPlease try again in %s.\n",
				formatCooldown(r.Seconds))
		}
		return nil
	})
}
