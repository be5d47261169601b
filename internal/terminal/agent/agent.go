package agent

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"desayuno/internal/handler/dto/request"
	"desayuno/internal/terminal/client"
	"desayuno/internal/terminal/queue"
	"desayuno/internal/usecase"

	"github.com/cenkalti/backoff/v4"
)

const syncBatchLimit = 100

// Agent drains the offline queue in the background. A timer tick or an
// explicit Kick (connectivity regained, manual sync) triggers a pass;
// an atomic guard collapses overlapping triggers into one running pass.
type Agent struct {
	store       *queue.Store
	client      *client.Client
	logger      *slog.Logger
	interval    time.Duration
	maxAttempts int

	syncing atomic.Bool
	kick    chan struct{}
}

func New(store *queue.Store, apiClient *client.Client, logger *slog.Logger, interval time.Duration, maxAttempts int) *Agent {
	return &Agent{
		store:       store,
		client:      apiClient,
		logger:      logger,
		interval:    interval,
		maxAttempts: maxAttempts,
		kick:        make(chan struct{}, 1),
	}
}

// Kick requests an immediate sync pass. Non-blocking; redundant kicks
// while a pass is queued are dropped.
func (a *Agent) Kick() {
	select {
	case a.kick <- struct{}{}:
	default:
	}
}

// Run loops until the context is cancelled.
func (a *Agent) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-a.kick:
		}

		if err := a.SyncOnce(ctx); err != nil {
			a.logger.Warn("sync pass failed", "error", err)
		}
	}
}

// SyncOnce replays all due intents. Safe to call concurrently; only one
// pass runs at a time and the losing caller returns immediately.
func (a *Agent) SyncOnce(ctx context.Context) error {
	if !a.syncing.CompareAndSwap(false, true) {
		return nil
	}
	defer a.syncing.Store(false)

	for {
		intents, err := a.store.DuePending(ctx, time.Now(), syncBatchLimit)
		if err != nil {
			return err
		}
		if len(intents) == 0 {
			return nil
		}

		if err := a.syncBatch(ctx, intents); err != nil {
			// Transport failure: everything stays queued for the next pass.
			return err
		}
		if len(intents) < syncBatchLimit {
			return nil
		}
	}
}

func (a *Agent) syncBatch(ctx context.Context, intents []queue.Intent) error {
	byLocalID := make(map[string]queue.Intent, len(intents))
	items := make([]request.SyncIntentRequest, 0, len(intents))
	for _, intent := range intents {
		byLocalID[intent.LocalID] = intent
		items = append(items, request.SyncIntentRequest{
			LocalID:        intent.LocalID,
			VoucherCode:    intent.VoucherCode,
			CafeteriaID:    intent.CafeteriaID,
			LocalTimestamp: intent.LocalTimestamp,
		})
	}

	resp, err := a.client.Sync(ctx, items)
	if err != nil {
		return err
	}

	for _, result := range resp.Results {
		intent, ok := byLocalID[result.LocalID]
		if !ok {
			a.logger.Warn("sync result for unknown intent", "local_id", result.LocalID)
			continue
		}
		a.applyResult(ctx, intent, result.Status, result.Reason, result.ServerTimestamp)
	}
	return nil
}

func (a *Agent) applyResult(ctx context.Context, intent queue.Intent, status, reason string, serverTS *time.Time) {
	switch status {
	case usecase.OutcomeSynced:
		if err := a.store.MarkSynced(ctx, intent.LocalID); err != nil {
			a.logger.Error("failed to clear synced intent", "local_id", intent.LocalID, "error", err)
		}

	case usecase.OutcomeConflict:
		err := a.store.RecordConflict(ctx, queue.Conflict{
			LocalID:         intent.LocalID,
			VoucherCode:     intent.VoucherCode,
			Reason:          reason,
			ServerTimestamp: serverTS,
		})
		if err != nil {
			a.logger.Error("failed to record conflict", "local_id", intent.LocalID, "error", err)
			return
		}
		a.logger.Warn("redemption conflict", "local_id", intent.LocalID, "code", intent.VoucherCode, "reason", reason)

	case usecase.OutcomeError:
		a.handleError(ctx, intent, reason)

	default:
		a.logger.Warn("unknown sync outcome", "local_id", intent.LocalID, "status", status)
	}
}

func (a *Agent) handleError(ctx context.Context, intent queue.Intent, reason string) {
	attempts := intent.Attempts + 1
	if attempts >= a.maxAttempts {
		if err := a.store.Park(ctx, intent.LocalID, reason); err != nil {
			a.logger.Error("failed to park intent", "local_id", intent.LocalID, "error", err)
			return
		}
		a.logger.Error("intent parked after repeated failures",
			"local_id", intent.LocalID, "code", intent.VoucherCode, "attempts", attempts, "reason", reason)
		return
	}

	next := time.Now().Add(retryDelay(attempts))
	if err := a.store.RecordFailure(ctx, intent.LocalID, next, reason); err != nil {
		a.logger.Error("failed to record intent failure", "local_id", intent.LocalID, "error", err)
	}
}

// retryDelay computes the exponential backoff delay for the n-th attempt.
func retryDelay(attempts int) time.Duration {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 5 * time.Second
	policy.MaxInterval = 10 * time.Minute
	policy.MaxElapsedTime = 0

	delay := policy.NextBackOff()
	for i := 1; i < attempts; i++ {
		delay = policy.NextBackOff()
	}
	return delay
}
