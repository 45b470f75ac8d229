// Package jobs provides scheduled background maintenance for the fulfillment
// core, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. CollectionRefreshJob - sweeps open collections and rewrites stale cached statuses
//  2. CounterRepairJob - recomputes cart and box order counters from membership
//
// # Usage
//
//	jobManager := jobs.NewJobManager(refreshHandler, repairHandler, jobs.Schedules{}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format with seconds. The refresh runs every
// five minutes and the repair nightly unless overridden through Schedules.
//
// Neither job changes order positions. The repair only rewrites counters.
package jobs
