package bootstrap

import (
	"log/slog"
	"time"

	"github.com/osse101/CharLedger_Go/internal/pending"
	"github.com/osse101/CharLedger_Go/internal/scheduler"
	"github.com/osse101/CharLedger_Go/internal/worker"
)

// Sweeper runs the pending-selection sweep on a worker pool
type Sweeper struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// StartSweeper schedules pending.SweepJob every interval, deleting prompts older than ttl
func StartSweeper(svc pending.Service, workers int, ttl, interval time.Duration) *Sweeper {
	pool := worker.NewPool(workers, SweepQueueSize).WithTimeout(SweepJobTimeout)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(SweepJobName, interval, pending.NewSweepJob(svc, ttl))

	slog.Info(LogMsgSweeperStarted, "ttl", ttl, "interval", interval, "workers", workers)
	return &Sweeper{Pool: pool, Scheduler: sched}
}

// Stop stops scheduling, then drains the pool
func (s *Sweeper) Stop() {
	s.Scheduler.Stop()
	s.Pool.Stop()
}
