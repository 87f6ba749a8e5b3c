// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping around the conversation and order flows.
//
// # Available Jobs
//
// 1. SessionReaperJob - Runs every minute to clear conversation sessions idle beyond the TTL
// 2. PendingOrderReminderJob - Runs every minute to nudge vendors about orders awaiting confirmation
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(sessions, sessionTTL, remindHandler, reminderThreshold, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The reaper only logs when it actually removed sessions
// - The reminder job logs failures and retries on the next tick
// - Failed job starts will stop any already running jobs
package jobs
