package cli

import (
	"fmt"

	"desayuno/internal/terminal/agent"
	"desayuno/internal/terminal/client"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	Watch bool
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(env *Env) *cobra.Command {
	opts := &SyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Replay queued offline redemptions",
		Long: `Replay queued redemption intents against the server.

Runs one pass by default; with --watch it keeps running and syncs on
the configured interval until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceID, err := uuid.Parse(env.Config.DeviceID)
			if err != nil {
				return fmt.Errorf("invalid TERMINAL_DEVICE_ID: %w", err)
			}

			if _, err := env.Client.Login(cmd.Context(), deviceID, env.Config.DeviceKey); err != nil {
				if client.IsTransportError(err) {
					return fmt.Errorf("server unreachable, nothing synced: %w", err)
				}
				return err
			}

			a := agent.New(env.Store, env.Client, env.Logger, env.Config.SyncInterval, env.Config.MaxAttempts)

			if opts.Watch {
				a.Kick()
				a.Run(cmd.Context())
				return nil
			}

			if err := a.SyncOnce(cmd.Context()); err != nil {
				return err
			}

			remaining, err := env.Store.PendingCount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sync complete, %d intent(s) still pending\n", remaining)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "keep syncing on the configured interval")

	return cmd
}
