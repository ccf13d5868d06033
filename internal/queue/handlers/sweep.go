package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// HandleNotificationSweep processes the periodic notification sweep
// task: overdue payments and expiring leases. Returning an error hands
// the task back to asynq for retry; the sweep is idempotent so a retry
// is safe.
func (h *Handlers) HandleNotificationSweep(ctx context.Context, task *asynq.Task) error {
	h.logger.Info("Processing notification sweep...")

	sum, err := h.usecase.RunNotificationSweep(ctx, time.Now())
	if err != nil {
		h.logger.Error("Notification sweep failed", slog.String("err", err.Error()))
		return err
	}

	h.logger.Info("Notification sweep completed",
		slog.Int("overdue_payments", sum.OverduePayments),
		slog.Int("lease_expirations", sum.LeaseExpirations),
		slog.Int("skipped", sum.Skipped))
	return nil
}
