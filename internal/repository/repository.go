// Package repository defines the persistence contracts the use cases depend
// on, together with their GORM implementations. All tenant-aware operations
// take an optional tenant id and apply it as a narrowing filter, never as a
// bypass.
package repository

import (
	"context"
	"errors"
	"time"

	"transhub/internal/models"
)

// ErrVersionConflict is returned by Update when the row's stored version no
// longer matches the version the caller started from.
var ErrVersionConflict = errors.New("repository: version conflict")

// SearchFilters narrows a substring search.
type SearchFilters struct {
	Language string
	Module   string
	// TenantID restricts tenant-scoped rows to one tenant; global rows are
	// always searchable.
	TenantID string
	// Limit caps the result set; 0 falls back to models.SearchRowLimit.
	Limit int
}

// LanguageModuleCount is one aggregation row of translated-key counts.
type LanguageModuleCount struct {
	Language string `json:"language"`
	Module   string `json:"module"`
	Count    int64  `json:"count"`
}

// TranslationStats is the raw aggregate the stats use case computes
// completeness from.
type TranslationStats struct {
	TotalRegisteredKeys int64
	KeysPerModule       map[string]int64
	TranslatedCounts    []LanguageModuleCount
}

// TranslationRepository is the store contract for translations and the
// registered key catalog.
type TranslationRepository interface {
	// FindByID fetches one row by id. A non-empty tenantID restricts the
	// lookup to rows owned by that tenant.
	FindByID(ctx context.Context, id, tenantID string) (*models.Translation, error)

	// FindByKey resolves one (key, language) pair, trying the tenant-scoped
	// row first when tenantID is non-empty and falling back to the global row.
	FindByKey(ctx context.Context, key, language, tenantID string) (*models.Translation, error)

	// FindExact fetches the row for an exact (key, language, scope) address,
	// with no fallback. Used for duplicate checks and import merging.
	FindExact(ctx context.Context, key, language string, scope models.Scope) (*models.Translation, error)

	// FindByLanguage lists rows for one language: all global rows plus, when
	// tenantID is non-empty, that tenant's overrides.
	FindByLanguage(ctx context.Context, language, tenantID string) ([]models.Translation, error)

	// FindByModule lists rows for one module with the same tenant narrowing.
	FindByModule(ctx context.Context, module, tenantID string) ([]models.Translation, error)

	Create(ctx context.Context, translation *models.Translation) error

	// Update persists the row if and only if its stored version still equals
	// expectedVersion, returning ErrVersionConflict otherwise. The row must
	// also belong to the translation's tenant scope; a mismatch reads as
	// gorm.ErrRecordNotFound so a foreign tenant's row is never revealed.
	Update(ctx context.Context, translation *models.Translation, expectedVersion int) error

	BulkCreate(ctx context.Context, translations []models.Translation) error
	BulkUpdate(ctx context.Context, translations []models.Translation) error

	// Search performs a substring match over key and value, bounded by the
	// configured row limit.
	Search(ctx context.Context, query string, filters SearchFilters) ([]models.Translation, error)

	// FindMissingKeys diffs the registered key catalog against existing rows
	// for one language.
	FindMissingKeys(ctx context.Context, language, module, tenantID string) ([]models.TranslationKey, error)

	GetTranslationStats(ctx context.Context, tenantID string) (*TranslationStats, error)

	// RegisterKeys inserts catalog entries, skipping keys already registered.
	// Returns the number of newly registered keys.
	RegisterKeys(ctx context.Context, keys []models.TranslationKey) (int, error)

	ListKeys(ctx context.Context, module string) ([]models.TranslationKey, error)
}

// AuditRepository is the append-only audit trail contract.
type AuditRepository interface {
	Append(ctx context.Context, entry *models.TranslationAudit) error
	AppendBatch(ctx context.Context, entries []models.TranslationAudit) error
	ListByKey(ctx context.Context, key string, limit int) ([]models.TranslationAudit, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
