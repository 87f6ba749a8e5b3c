package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"chatorder/internal/core/application/router"
	"chatorder/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionReaperJob        *SessionReaperJob
	pendingOrderReminderJob *PendingOrderReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	sessions *router.Store,
	sessionTTL time.Duration,
	remindHandler commands.RemindPendingOrdersCommandHandler,
	reminderThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sessionReaperJob:        NewSessionReaperJob(sessions, sessionTTL, logger),
		pendingOrderReminderJob: NewPendingOrderReminderJob(remindHandler, reminderThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionReaperJob.Start(); err != nil {
		return fmt.Errorf("failed to start session reaper job: %w", err)
	}

	if err := jm.pendingOrderReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionReaperJob.Stop()
		return fmt.Errorf("failed to start pending order reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sessionReaperJob.Stop()
	jm.pendingOrderReminderJob.Stop()
}
