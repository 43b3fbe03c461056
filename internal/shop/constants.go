package shop

import "time"

const (
	// ConfigFileName keys the sync hash of the catalog file
	ConfigFileName = "shop.json"

	// SchemaPath is the JSON Schema every catalog file must satisfy
	SchemaPath = "configs/schemas/shop.schema.json"

	// DefaultCacheTTL bounds how stale catalog reads can get when another
	// process syncs the catalog
	DefaultCacheTTL = 5 * time.Minute

	catalogCacheKey = "catalog"
)

// Error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read shop config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse shop config: %w"
	ErrMsgSchemaFailed         = "schema validation failed for %s: %w"
	ErrMsgConfigNil            = "config is nil"
	ErrMsgCheckHashFailed      = "failed to read sync hash: %w"
	ErrMsgReplaceItemsFailed   = "failed to replace shop items: %w"
	ErrMsgListItemsFailed      = "failed to list shop items: %w"
)

// Format strings for item validation errors
const (
	ErrFmtItemAtIndexEmpty  = "%w: item at index %d has an empty name"
	ErrFmtItemNegativePrice = "%w: item %q has negative price"
	ErrFmtItemPriceTooHigh  = "%w: item %q price exceeds %d"
	ErrFmtItemNameTooLong   = "%w: item %q name longer than %d characters"
)

// Log messages
const (
	LogMsgConfigUnchanged      = "Shop config unchanged, skipping sync"
	LogMsgSyncCompleted        = "Shop sync completed"
	LogMsgUpdateMetadataFailed = "Failed to update shop sync metadata"
)
