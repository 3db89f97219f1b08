// Package jobs provides scheduled background tasks.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// AssignmentExpiryJob runs every five seconds by default. It reverts orders whose
// rider did not answer the assignment before the deadline, returning the order
// to pending and the rider to available.
//
// # Usage
//
//	expiryJob := jobs.NewAssignmentExpiryJob(expireHandler, redisLock, m, cfg.ExpirySchedule, logger)
//	jobManager := jobs.NewJobManager(expiryJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Replicas
//
// Every tick first takes a short Redis lock so that one replica sweeps at a
// time. Skipping a tick is harmless: the next one picks up whatever expired.
// Without Redis the lock always succeeds.
//
// # Error Handling
//
// A failed tick is logged and the schedule continues. Failures of single orders
// are handled inside the sweep and never abort it.
package jobs
