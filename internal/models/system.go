package models

import "time"

// SystemSetting corresponds to the system_settings table.
type SystemSetting struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SettingKey   string    `gorm:"type:varchar(255);not null;unique" json:"setting_key"`
	SettingValue string    `gorm:"type:text;not null" json:"setting_value"`
	Description  string    `gorm:"type:varchar(512)" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TenantAccessKey backs the tenant role of the auth middleware. Key material
// is bcrypt-hashed at rest; the plaintext is shown once at creation time.
type TenantAccessKey struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID   string     `gorm:"type:varchar(64);not null;index:idx_tenant_access_keys_tenant" json:"tenant_id"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	KeyHash    string     `gorm:"type:varchar(60);not null" json:"-"`
	Enabled    bool       `gorm:"not null;default:true" json:"enabled"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName specifies the table name for TenantAccessKey.
func (TenantAccessKey) TableName() string {
	return "tenant_access_keys"
}

// SystemSettingInfo is the metadata form of one setting exposed by the API.
type SystemSettingInfo struct {
	Key          string `json:"key"`
	Value        any    `json:"value"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	DefaultValue any    `json:"default_value"`
}

// CategorizedSettings groups settings metadata by category for the API.
type CategorizedSettings struct {
	CategoryName string              `json:"category_name"`
	Settings     []SystemSettingInfo `json:"settings"`
}
