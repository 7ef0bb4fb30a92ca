package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/unifind/internal/admin"
	"github.com/erazemk/unifind/internal/form"
	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/sample"
)

var errAdminOnly = errors.New("this command needs an admin account")

// adminToken returns the stored token if the signed-in user is an admin.
func (a *app) adminToken(ctx context.Context) (string, error) {
	sess, err := a.sessions.Load(ctx)
	if err != nil {
		return "", err
	}
	if !sess.Authenticated() {
		return "", form.ErrLoginRequired
	}
	if !sess.IsAdmin() {
		return "", errAdminOnly
	}
	return sess.Token, nil
}

func newClaimCmd(a *app) *cobra.Command {
	var in model.ClaimInput

	cmd := &cobra.Command{
		Use:   "claim <report-id>",
		Short: "Claim an item as yours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.forms.SubmitClaim(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Claim %s submitted for %s. An administrator will verify it.\n", c.ID, c.ItemTitle)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.VerificationNote, "note", "n", "", "How you can prove the item is yours (min 10 characters)")
	return cmd
}

func newClaimsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "Review pending claims (admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List claims awaiting verification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := a.adminToken(cmd.Context())
			if err != nil {
				return err
			}
			t := admin.NewTriage(cmd.Context(), a.client, token)
			if err := t.Load(cmd.Context()); err != nil {
				return err
			}
			renderClaims(cmd.OutOrStdout(), t.Pending())
			return nil
		},
	}

	cmd.AddCommand(list, newResolveCmd(a, "approve"), newResolveCmd(a, "reject"))
	return cmd
}

func newResolveCmd(a *app, action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <claim-id>...",
		Short: "Send " + action + " for one or more claims",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.adminToken(cmd.Context())
			if err != nil {
				return err
			}

			type result struct {
				id  string
				err error
			}
			results := make(chan result, len(args))
			t := admin.NewTriage(cmd.Context(), a.client, token)
			t.OnResult = func(_, id string, err error) {
				results <- result{id: id, err: err}
			}

			for _, id := range args {
				if action == "approve" {
					t.Approve(id)
				} else {
					t.Reject(id)
				}
			}
			t.Wait()
			close(results)

			out := cmd.OutOrStdout()
			var failed int
			for r := range results {
				if r.err != nil {
					failed++
					fmt.Fprintf(out, "claim %s: %s\n", r.id, describe(r.err))
					continue
				}
				fmt.Fprintf(out, "claim %s: %s sent\n", r.id, action)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d claims could not be updated", failed, len(args))
			}
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the admin dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, claims := sample.Items(), sample.Claims()
			if !local {
				token, err := a.adminToken(cmd.Context())
				if err != nil {
					return err
				}
				if reports, err = a.client.ListReports(cmd.Context(), nil); err != nil {
					return err
				}
				if claims, err = a.client.ListClaims(cmd.Context(), token); err != nil {
					return err
				}
			}
			renderStats(cmd.OutOrStdout(), admin.Stats(reports, claims, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Summarize the built-in sample data")
	return cmd
}
