package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"chatorder/internal/core/application/usecases/commands"
)

// PendingOrderReminderJob nudges vendors about orders stuck in vendor
// confirmation. Runs every minute; the order itself only moves when the
// vendor answers.
type PendingOrderReminderJob struct {
	handler   commands.RemindPendingOrdersCommandHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPendingOrderReminderJob creates a job that reminds vendors about orders
// pending longer than threshold.
func NewPendingOrderReminderJob(
	handler commands.RemindPendingOrdersCommandHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *PendingOrderReminderJob {
	return &PendingOrderReminderJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "pending_order_reminder_job"),
	}
}

// Start begins the pending order reminder job to run every minute.
func (j *PendingOrderReminderJob) Start() error {
	_, err := j.cron.AddFunc("30 * * * * *", func() {
		ctx := context.Background()

		command, err := commands.NewRemindPendingOrdersCommand(j.threshold)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending order reminder command invalid", "error", err)
			return
		}

		if _, err := j.handler.Handle(ctx, command); err != nil {
			j.logger.ErrorContext(ctx, "Pending order reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order reminder job started (running every minute)")
	return nil
}

// Stop stops the pending order reminder job.
func (j *PendingOrderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order reminder job stopped")
}
