package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"desayuno/internal/pkg/signer"
	"desayuno/internal/terminal/client"
	"desayuno/internal/terminal/queue"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RedeemOptions holds flags for the redeem command.
type RedeemOptions struct {
	Payload string
	Code    string
}

// NewRedeemCommand creates the redeem command.
func NewRedeemCommand(env *Env) *cobra.Command {
	opts := &RedeemOptions{}

	cmd := &cobra.Command{
		Use:   "redeem",
		Short: "Redeem a voucher, queueing offline if the server is unreachable",
		Long: `Redeem a scanned voucher.

With --payload the scanned QR payload is decoded and pre-validated
locally (signature and validity window) before contacting the server.
If the server cannot be reached the redemption intent is stored in the
local queue and replayed by "sync"; the guest is served either way.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRedeem(cmd.Context(), env, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Payload, "payload", "", "scanned QR payload")
	cmd.Flags().StringVar(&opts.Code, "code", "", "voucher code (manual entry)")
	cmd.MarkFlagsOneRequired("payload", "code")
	cmd.MarkFlagsMutuallyExclusive("payload", "code")

	return cmd
}

func runRedeem(ctx context.Context, env *Env, opts *RedeemOptions, cmd *cobra.Command) error {
	now := time.Now()
	code := opts.Code
	signature := ""

	if opts.Payload != "" {
		payload, err := preValidate(env, opts.Payload, now)
		if err != nil {
			return err
		}
		env.Cache.Put(payload)
		code = payload.Code
		signature = payload.SignatureString()
	} else if payload, ok := env.Cache.Get(code); ok {
		// Re-scan by code of a voucher seen earlier in this session.
		if !payload.WindowContains(now) {
			return fmt.Errorf("voucher %s is outside its validity window", code)
		}
		signature = payload.SignatureString()
	}

	cafeteriaID, err := uuid.Parse(env.Config.CafeteriaID)
	if err != nil {
		return fmt.Errorf("invalid TERMINAL_CAFETERIA_ID: %w", err)
	}
	deviceID, err := uuid.Parse(env.Config.DeviceID)
	if err != nil {
		return fmt.Errorf("invalid TERMINAL_DEVICE_ID: %w", err)
	}

	localID := uuid.New().String()

	if _, err := env.Client.Login(ctx, deviceID, env.Config.DeviceKey); err != nil {
		if client.IsTransportError(err) {
			return queueOffline(ctx, env, cmd, localID, code, cafeteriaID, now)
		}
		return err
	}

	redemption, err := env.Client.Redeem(ctx, code, signature, localID, now)
	if err != nil {
		if client.IsTransportError(err) {
			return queueOffline(ctx, env, cmd, localID, code, cafeteriaID, now)
		}

		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(cmd.OutOrStdout(), "REJECTED [%s]: %s\n", apiErr.Reason, apiErr.Message)
			return nil
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "REDEEMED %s at %s\n", code, redemption.RedeemedAt.Format(time.RFC3339))
	return nil
}

// preValidate decodes and checks the QR payload before any network call.
// Signature verification only happens when the signer public key is
// configured; the window check always runs.
func preValidate(env *Env, encoded string, now time.Time) (signer.Payload, error) {
	payload, err := signer.DecodePayload(encoded)
	if err != nil {
		return signer.Payload{}, err
	}

	if env.Config.SignerPubKey != "" {
		verifier, err := signer.NewVerifier(env.Config.SignerPubKey)
		if err != nil {
			return signer.Payload{}, fmt.Errorf("invalid TERMINAL_SIGNER_PUBKEY: %w", err)
		}
		if err := payload.Verify(verifier); err != nil {
			return signer.Payload{}, fmt.Errorf("voucher signature invalid: %w", err)
		}
	}

	if !payload.WindowContains(now) {
		return signer.Payload{}, fmt.Errorf("voucher %s is outside its validity window", payload.Code)
	}
	return payload, nil
}

func queueOffline(ctx context.Context, env *Env, cmd *cobra.Command, localID, code string, cafeteriaID uuid.UUID, now time.Time) error {
	err := env.Store.Enqueue(ctx, queue.Intent{
		LocalID:        localID,
		VoucherCode:    code,
		CafeteriaID:    cafeteriaID,
		LocalTimestamp: now,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "QUEUED %s (offline, local id %s)\n", code, localID)
	return nil
}
