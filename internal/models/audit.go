package models

import (
	"time"

	"gorm.io/datatypes"
)

// TranslationAudit is an immutable append-only record of one mutating
// operation. Rows are written after the corresponding store write succeeds and
// are never updated.
type TranslationAudit struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	TranslationKey string         `gorm:"type:varchar(200);not null;index:idx_translation_audits_key" json:"translation_key"`
	Language       string         `gorm:"type:varchar(10);not null" json:"language"`
	OldValue       *string        `gorm:"type:text" json:"old_value,omitempty"`
	NewValue       string         `gorm:"type:text;not null" json:"new_value"`
	Action         string         `gorm:"type:varchar(16);not null" json:"action"`
	TenantID       string         `gorm:"type:varchar(64);not null;default:''" json:"tenant_id,omitempty"`
	ChangedBy      string         `gorm:"type:varchar(128);not null" json:"changed_by"`
	ChangedAt      time.Time      `gorm:"not null;index:idx_translation_audits_changed_at" json:"changed_at"`
	Metadata       datatypes.JSON `gorm:"type:json" json:"metadata,omitempty"`
}

// TableName specifies the table name for TranslationAudit.
func (TranslationAudit) TableName() string {
	return "translation_audits"
}

// Scope returns the tagged scope variant derived from the tenant column.
func (a *TranslationAudit) Scope() Scope {
	if a.TenantID == "" {
		return GlobalScope()
	}
	return TenantScope(a.TenantID)
}
