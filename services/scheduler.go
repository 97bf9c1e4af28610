package services

import (
	"log"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartStatsScheduler refreshes the global aggregate and the materialized
// ranks on an interval. The synchronous refresh on each recorded activity
// stays; the job covers writes that bypass it (registration, audit repairs).
func StartStatsScheduler(stats *StatsService, ranks *RankService) {
	interval := 5 * time.Minute
	if raw := os.Getenv("STATS_REFRESH_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			interval = d
		}
	}

	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := stats.Recalculate(); err != nil {
				log.Printf("[Scheduler] Global stats refresh failed: %v", err)
				return
			}
			if err := ranks.RecomputeAll(nil); err != nil {
				log.Printf("[Scheduler] Rank refresh failed: %v", err)
				return
			}
			log.Println("✅ Scheduled stats & rank refresh complete")
		}),
	)
}
