package shop

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/logger"
	"github.com/osse101/CharLedger_Go/internal/naming"
	"github.com/osse101/CharLedger_Go/internal/repository"
	"github.com/osse101/CharLedger_Go/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrInvalidConfig = errors.New("invalid shop configuration")
	ErrDuplicateName = errors.New("duplicate shop item name")
)

// Config is the JSON catalog file
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Items       []Def  `json:"items"`
}

// Def is one item in the catalog file
type Def struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	OneTime     bool   `json:"one_time,omitempty"`
}

// SyncResult reports what a sync changed
type SyncResult struct {
	Skipped  bool  `json:"skipped"`
	Upserted int   `json:"upserted"`
	Removed  int64 `json:"removed"`
}

// Loader reads, validates and syncs the catalog file
type Loader interface {
	Load(path string) (*Config, []byte, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, raw []byte, repo repository.Shop) (*SyncResult, error)
}

type loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader
func NewLoader() Loader {
	return &loader{schemaValidator: validation.NewSchemaValidator()}
}

// Load reads the catalog file, checks it against the schema and parses it.
// The raw bytes are returned for change detection.
func (l *loader) Load(path string) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, SchemaPath); err != nil {
		return nil, nil, fmt.Errorf(ErrMsgSchemaFailed, path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}
	return &config, data, nil
}

// Validate checks rules the schema cannot express, chiefly that no two
// items share a name in any casing
func (l *loader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	names := make([]string, 0, len(config.Items))
	for i, item := range config.Items {
		name := naming.Clean(item.Name)
		switch {
		case name == "":
			return fmt.Errorf(ErrFmtItemAtIndexEmpty, ErrInvalidConfig, i)
		case item.Price < 0:
			return fmt.Errorf(ErrFmtItemNegativePrice, ErrInvalidConfig, name)
		case item.Price > domain.MaxTransactionAmount:
			return fmt.Errorf(ErrFmtItemPriceTooHigh, ErrInvalidConfig, name, domain.MaxTransactionAmount)
		case utf8.RuneCountInString(name) > domain.MaxItemNameLength:
			return fmt.Errorf(ErrFmtItemNameTooLong, ErrInvalidConfig, name, domain.MaxItemNameLength)
		}
		names = append(names, item.Name)
	}

	if err := naming.NewResolver().Replace(names); err != nil {
		return fmt.Errorf("%w: %w", ErrDuplicateName, err)
	}
	return nil
}

// SyncToDatabase makes the stored catalog equal to config. Nothing is
// written when raw hashes the same as the last successful sync.
func (l *loader) SyncToDatabase(ctx context.Context, config *Config, raw []byte, repo repository.Shop) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	sum := sha256.Sum256(raw)
	hash := hex.EncodeToString(sum[:])

	previous, err := repo.GetSyncHash(ctx, ConfigFileName)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckHashFailed, err)
	}
	if previous == hash {
		log.Info(LogMsgConfigUnchanged, "hash", hash)
		return &SyncResult{Skipped: true}, nil
	}

	items := make([]domain.ShopItem, 0, len(config.Items))
	for _, def := range config.Items {
		items = append(items, domain.ShopItem{
			Name:        naming.Clean(def.Name),
			Price:       def.Price,
			Description: def.Description,
			OneTime:     def.OneTime,
		})
	}

	removed, err := repo.ReplaceShopItems(ctx, items)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReplaceItemsFailed, err)
	}

	if err := repo.SetSyncHash(ctx, ConfigFileName, hash); err != nil {
		// the catalog is already correct; the next start just syncs again
		log.Warn(LogMsgUpdateMetadataFailed, "error", err)
	}

	result := &SyncResult{Upserted: len(items), Removed: removed}
	log.Info(LogMsgSyncCompleted, "upserted", result.Upserted, "removed", result.Removed)
	return result, nil
}
