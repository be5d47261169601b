package cli

import (
	"log/slog"
	"os"

	"desayuno/internal/pkg/config"
	"desayuno/internal/terminal/client"
	"desayuno/internal/terminal/queue"

	"github.com/spf13/cobra"
)

// Env holds everything a subcommand needs: config, queue store, API
// client and logger. Built once in PersistentPreRunE so commands stay
// thin.
type Env struct {
	Config config.TerminalConfig
	Store  *queue.Store
	Cache  *queue.PayloadCache
	Client *client.Client
	Logger *slog.Logger
}

func (e *Env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// NewRootCommand creates the root command for the cafeteria terminal.
func NewRootCommand() *cobra.Command {
	env := &Env{}
	var verbose bool

	cmd := &cobra.Command{
		Use:   "desayuno-terminal",
		Short: "Cafeteria breakfast voucher terminal",
		Long: `Offline-first cafeteria terminal for breakfast voucher redemption.

Redemptions are attempted against the server immediately; when the
network is down they are queued locally and replayed by "sync".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			env.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			cfg, err := config.LoadTerminalConfig()
			if err != nil {
				return err
			}
			env.Config = cfg

			store, err := queue.Open(cfg.QueuePath)
			if err != nil {
				return err
			}
			env.Store = store

			cache, err := queue.NewPayloadCache(cfg.CacheSize)
			if err != nil {
				return err
			}
			env.Cache = cache
			env.Client = client.New(cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.Close()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewLoginCommand(env))
	cmd.AddCommand(NewRedeemCommand(env))
	cmd.AddCommand(NewSyncCommand(env))
	cmd.AddCommand(NewConflictsCommand(env))

	return cmd
}
