package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0644
)

// Log file rotation
const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is the number of older log files kept at startup
	LogFileRetentionCount = 9
)

// Sweeper defaults
const (
	SweepQueueSize  = 4
	SweepJobTimeout = time.Minute
	SweepJobName    = "pending_sweep"
)

// Log messages for startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting CharLedger"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgStoreOpened         = "Store opened"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	LogMsgSyncingShopCatalog  = "Syncing shop catalog from JSON config..."
	LogMsgShopCatalogSynced   = "Shop catalog synced successfully"
	LogMsgShopCatalogSkipped  = "Shop catalog unchanged, sync skipped"
	LogMsgSweeperStarted      = "Pending selection sweeper started"
)

// Error messages for startup
const (
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	ErrMsgFailedOpenStore     = "failed to open store"
	ErrMsgFailedMigrate       = "failed to migrate database"
	ErrMsgUnsupportedDriver   = "unsupported store driver"
	ErrMsgFailedSyncShop      = "failed to sync shop catalog"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgStoppingSweeper      = "Stopping pending selection sweeper..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgStoreCloseFailed     = "Store close failed"
	LogMsgTelemetryFlushFailed = "Telemetry shutdown failed"
)
