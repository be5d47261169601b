package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"desayuno/internal/terminal/queue"

	"github.com/spf13/cobra"
)

// NewConflictsCommand creates the conflicts command group.
func NewConflictsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Inspect and resolve redemption conflicts",
	}

	cmd.AddCommand(newConflictsListCommand(env))
	cmd.AddCommand(newConflictsResolveCommand(env))

	return cmd
}

func newConflictsListCommand(env *Env) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List redemption conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			conflicts, err := env.Store.Conflicts(cmd.Context(), all)
			if err != nil {
				return err
			}

			if len(conflicts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no conflicts")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LOCAL ID\tCODE\tREASON\tSERVER TIME\tRESOLUTION")
			for _, c := range conflicts {
				serverTS := "-"
				if c.ServerTimestamp != nil {
					serverTS = c.ServerTimestamp.Format(time.RFC3339)
				}
				resolution := c.Resolution
				if resolution == "" {
					resolution = "unresolved"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.LocalID, c.VoucherCode, c.Reason, serverTS, resolution)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include resolved conflicts")

	return cmd
}

func newConflictsResolveCommand(env *Env) *cobra.Command {
	var action string

	cmd := &cobra.Command{
		Use:   "resolve <local-id>",
		Short: "Resolve a conflict",
		Long: `Resolve a redemption conflict.

Actions:
  accept_server - the server's redemption stands, nothing else to do
  regenerate    - the voucher must be reissued by the front desk
  dismiss       - reviewed and intentionally ignored

Resolving an already-resolved conflict is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Store.Resolve(cmd.Context(), args[0], action); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "conflict %s resolved (%s)\n", args[0], action)
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", queue.ResolutionAcceptServer, "resolution action (accept_server|regenerate|dismiss)")

	return cmd
}
