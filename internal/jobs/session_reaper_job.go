package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"chatorder/internal/core/application/router"
)

// SessionReaperJob clears conversation sessions whose customer went quiet.
// Runs every minute; a reaped customer simply starts from the welcome menu
// on their next message.
type SessionReaperJob struct {
	store  *router.Store
	ttl    time.Duration
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSessionReaperJob creates a job that reaps sessions idle longer than ttl.
func NewSessionReaperJob(store *router.Store, ttl time.Duration, logger *slog.Logger) *SessionReaperJob {
	return &SessionReaperJob{
		store:  store,
		ttl:    ttl,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "session_reaper_job"),
	}
}

// Start begins the session reaper job to run every minute.
func (j *SessionReaperJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		reaped := j.store.Reap(j.ttl, time.Now().UTC())
		if reaped > 0 {
			j.logger.Info("idle sessions reaped", "count", reaped, "remaining", j.store.Len())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session reaper job started (running every minute)")
	return nil
}

// Stop stops the session reaper job.
func (j *SessionReaperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session reaper job stopped")
}
