package config

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"transhub/internal/models"
	"transhub/internal/types"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SystemSettingsManager keeps an in-memory snapshot of the runtime settings
// stored in the system_settings table. Reads are lock-free copies; updates
// persist first and refresh the snapshot afterwards.
type SystemSettingsManager struct {
	mu       sync.RWMutex
	settings types.SystemSettings
	db       *gorm.DB
}

// NewSystemSettingsManager creates a manager primed with struct-tag defaults.
func NewSystemSettingsManager() *SystemSettingsManager {
	return &SystemSettingsManager{
		settings: defaultSettings(),
	}
}

// defaultSettings builds a SystemSettings value from the `default` struct tags.
func defaultSettings() types.SystemSettings {
	var s types.SystemSettings
	v := reflect.ValueOf(&s).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		def := t.Field(i).Tag.Get("default")
		if def == "" {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(def)
		case reflect.Int:
			if n, err := strconv.Atoi(def); err == nil {
				field.SetInt(int64(n))
			}
		}
	}
	return s
}

// EnsureSettingsInitialized inserts a row for every setting that does not yet
// exist, so fresh databases start from the tag defaults.
func (sm *SystemSettingsManager) EnsureSettingsInitialized(db *gorm.DB) error {
	sm.db = db

	defaults := defaultSettings()
	v := reflect.ValueOf(defaults)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := jsonKey(t.Field(i))
		if key == "" {
			continue
		}
		var count int64
		if err := db.Model(&models.SystemSetting{}).Where("setting_key = ?", key).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check setting %s: %w", key, err)
		}
		if count > 0 {
			continue
		}
		row := models.SystemSetting{
			SettingKey:   key,
			SettingValue: fmt.Sprint(v.Field(i).Interface()),
			Description:  t.Field(i).Tag.Get("desc"),
		}
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to initialize setting %s: %w", key, err)
		}
	}

	return sm.Reload()
}

// Reload replaces the in-memory snapshot with the database state.
func (sm *SystemSettingsManager) Reload() error {
	if sm.db == nil {
		return fmt.Errorf("settings manager not initialized")
	}

	var rows []models.SystemSetting
	if err := sm.db.Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load system settings: %w", err)
	}

	settings := defaultSettings()
	v := reflect.ValueOf(&settings).Elem()
	t := v.Type()
	byKey := make(map[string]string, len(rows))
	for _, row := range rows {
		byKey[row.SettingKey] = row.SettingValue
	}
	for i := 0; i < t.NumField(); i++ {
		key := jsonKey(t.Field(i))
		raw, ok := byKey[key]
		if !ok {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				logrus.Warnf("Invalid value for setting %s: %q, keeping default", key, raw)
				continue
			}
			field.SetInt(int64(n))
		}
	}

	sm.mu.Lock()
	sm.settings = settings
	sm.mu.Unlock()
	return nil
}

// GetSettings returns a copy of the current settings snapshot.
func (sm *SystemSettingsManager) GetSettings() types.SystemSettings {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.settings
}

// UpdateSettings persists the provided key/value pairs and refreshes the
// snapshot. Unknown keys are rejected.
func (sm *SystemSettingsManager) UpdateSettings(updates map[string]string) error {
	if sm.db == nil {
		return fmt.Errorf("settings manager not initialized")
	}

	known := make(map[string]struct{})
	t := reflect.TypeOf(types.SystemSettings{})
	for i := 0; i < t.NumField(); i++ {
		if key := jsonKey(t.Field(i)); key != "" {
			known[key] = struct{}{}
		}
	}

	for key, value := range updates {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("unknown setting: %s", key)
		}
		if err := sm.db.Model(&models.SystemSetting{}).
			Where("setting_key = ?", key).
			Update("setting_value", value).Error; err != nil {
			return fmt.Errorf("failed to update setting %s: %w", key, err)
		}
	}

	return sm.Reload()
}

func jsonKey(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i]
		}
	}
	return tag
}
