package worker

import "time"

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerJobPanic  = "Worker job panicked"
	LogMsgQueueFull       = "Worker queue full, job dropped"
	LogMsgPoolStopping    = "Worker pool stopping"
)

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 30 * time.Second

// Pool sizing used when the caller passes non-positive values
const (
	DefaultWorkers   = 2
	DefaultQueueSize = 16
)
