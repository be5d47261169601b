package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewLoginCommand creates the login command.
func NewLoginCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the voucher server",
		Long: `Authenticate the device and print the session token and the
voucher signer public key. Export the key as TERMINAL_SIGNER_PUBKEY to
enable offline QR pre-validation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceID, err := uuid.Parse(env.Config.DeviceID)
			if err != nil {
				return fmt.Errorf("invalid TERMINAL_DEVICE_ID: %w", err)
			}

			resp, err := env.Client.Login(cmd.Context(), deviceID, env.Config.DeviceKey)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "device: %s (%s)\n", resp.DeviceName, resp.DeviceID)
			fmt.Fprintf(cmd.OutOrStdout(), "token: %s\n", resp.Token)
			fmt.Fprintf(cmd.OutOrStdout(), "signer public key: %s\n", resp.SignerPublicKey)
			return nil
		},
	}
}
