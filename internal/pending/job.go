package pending

import (
	"context"
	"time"
)

// SweepJob is a worker.Job that expires abandoned prompts
type SweepJob struct {
	Service Service
	TTL     time.Duration
}

// NewSweepJob creates a sweep job; a non-positive ttl means DefaultTTL
func NewSweepJob(svc Service, ttl time.Duration) *SweepJob {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SweepJob{Service: svc, TTL: ttl}
}

// Process implements worker.Job
func (j *SweepJob) Process(ctx context.Context) error {
	_, err := j.Service.Sweep(ctx, j.TTL)
	return err
}
