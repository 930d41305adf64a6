// Package models defines the persisted entities of the translation hub.
package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Languages a translation may be stored in. "en" is the base language every
// resolution chain falls back to.
var SupportedLanguages = []string{"en", "pt-BR", "es", "fr", "de"}

// Reserved modules are never tenant-customizable, regardless of the
// per-translation flag. Matching is case-insensitive.
var ReservedModules = []string{"auth", "system", "core"}

// DefaultModule is assigned to keys without a dot segment.
const DefaultModule = "common"

// Field limits and batch caps.
const (
	MaxKeyLength         = 200
	MaxValueLength       = 5000
	MaxBulkImportEntries = 1000
	MaxBulkImportErrors  = 10
	SearchRowLimit       = 1000
)

// Audit actions.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
)

// Scope is the tagged variant distinguishing a translation that applies to
// every tenant from one owned by a single tenant. The zero value is Global.
type Scope struct {
	tenantID string
}

// GlobalScope returns the scope shared by all tenants.
func GlobalScope() Scope {
	return Scope{}
}

// TenantScope returns a scope owned by one tenant.
func TenantScope(tenantID string) Scope {
	return Scope{tenantID: tenantID}
}

// IsGlobal reports whether the scope applies to all tenants.
func (s Scope) IsGlobal() bool {
	return s.tenantID == ""
}

// Tenant returns the owning tenant id and whether the scope is tenant-bound.
func (s Scope) Tenant() (string, bool) {
	return s.tenantID, s.tenantID != ""
}

// ColumnValue returns the persisted tenant_id column value ("" for global).
func (s Scope) ColumnValue() string {
	return s.tenantID
}

// String renders the scope for cache keys and audit rows.
func (s Scope) String() string {
	if s.tenantID == "" {
		return "global"
	}
	return "tenant:" + s.tenantID
}

// Translation is the resolvable unit: one value for a (key, language, scope)
// triple. At most one global and, per tenant, one tenant-scoped row may exist
// for a given (key, language) pair; the composite unique index enforces it.
type Translation struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Key            string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_translations_key_lang_tenant;index:idx_translations_key" json:"key"`
	Language       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_translations_key_lang_tenant;index:idx_translations_language" json:"language"`
	Value          string    `gorm:"type:text;not null" json:"value"`
	Module         string    `gorm:"type:varchar(100);not null;index:idx_translations_module" json:"module"`
	Context        string    `gorm:"type:varchar(500)" json:"context,omitempty"`
	TenantID       string    `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_translations_key_lang_tenant;index:idx_translations_tenant" json:"tenant_id,omitempty"`
	IsCustomizable bool      `gorm:"not null;default:true" json:"is_customizable"`
	Version        int       `gorm:"not null;default:1" json:"version"`
	CreatedBy      string    `gorm:"type:varchar(128)" json:"created_by"`
	UpdatedBy      string    `gorm:"type:varchar(128)" json:"updated_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for Translation.
func (Translation) TableName() string {
	return "translations"
}

// Scope returns the tagged scope variant derived from the tenant column.
func (t *Translation) Scope() Scope {
	if t.TenantID == "" {
		return GlobalScope()
	}
	return TenantScope(t.TenantID)
}

// TranslationKey is the registered key catalog: a key's declaration
// independent of any language, used to compute missing keys per language.
// Populated by module registration and seeding, read-only for use cases.
type TranslationKey struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Key          string         `gorm:"type:varchar(200);not null;unique" json:"key"`
	Module       string         `gorm:"type:varchar(100);not null;index:idx_translation_keys_module" json:"module"`
	DefaultValue string         `gorm:"type:text;not null" json:"default_value"`
	Params       datatypes.JSON `gorm:"type:json" json:"params,omitempty"`
	Priority     int            `gorm:"not null;default:0" json:"priority"`
	Description  string         `gorm:"type:varchar(500)" json:"description,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName specifies the table name for TranslationKey.
func (TranslationKey) TableName() string {
	return "translation_keys"
}

// IsReservedModule reports whether module belongs to the reserved set.
func IsReservedModule(module string) bool {
	lowered := strings.ToLower(module)
	for _, reserved := range ReservedModules {
		if lowered == reserved {
			return true
		}
	}
	return false
}

// IsSupportedLanguage reports whether language is in the supported set.
func IsSupportedLanguage(language string) bool {
	for _, lang := range SupportedLanguages {
		if language == lang {
			return true
		}
	}
	return false
}
