package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transhub/internal/models"
	"transhub/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const bulkBatchSize = 100

// GormTranslationRepository is the relational implementation of
// TranslationRepository.
type GormTranslationRepository struct {
	db *gorm.DB
}

// NewGormTranslationRepository constructs the repository.
func NewGormTranslationRepository(db *gorm.DB) *GormTranslationRepository {
	return &GormTranslationRepository{db: db}
}

func (r *GormTranslationRepository) FindByID(ctx context.Context, id, tenantID string) (*models.Translation, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}

	var translation models.Translation
	if err := query.First(&translation).Error; err != nil {
		return nil, err
	}
	return &translation, nil
}

func (r *GormTranslationRepository) FindByKey(ctx context.Context, key, language, tenantID string) (*models.Translation, error) {
	if tenantID != "" {
		var scoped models.Translation
		err := r.db.WithContext(ctx).
			Where("translations.key = ? AND language = ? AND tenant_id = ?", key, language, tenantID).
			First(&scoped).Error
		if err == nil {
			return &scoped, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var global models.Translation
	err := r.db.WithContext(ctx).
		Where("translations.key = ? AND language = ? AND tenant_id = ''", key, language).
		First(&global).Error
	if err != nil {
		return nil, err
	}
	return &global, nil
}

func (r *GormTranslationRepository) FindExact(ctx context.Context, key, language string, scope models.Scope) (*models.Translation, error) {
	var translation models.Translation
	err := r.db.WithContext(ctx).
		Where("translations.key = ? AND language = ? AND tenant_id = ?", key, language, scope.ColumnValue()).
		First(&translation).Error
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

func (r *GormTranslationRepository) FindByLanguage(ctx context.Context, language, tenantID string) ([]models.Translation, error) {
	query := r.db.WithContext(ctx).Where("language = ?", language)
	if tenantID != "" {
		query = query.Where("(tenant_id = '' OR tenant_id = ?)", tenantID)
	} else {
		query = query.Where("tenant_id = ''")
	}

	var translations []models.Translation
	if err := query.Order("translations.key").Find(&translations).Error; err != nil {
		return nil, err
	}
	return translations, nil
}

func (r *GormTranslationRepository) FindByModule(ctx context.Context, module, tenantID string) ([]models.Translation, error) {
	query := r.db.WithContext(ctx).Where("module = ?", module)
	if tenantID != "" {
		query = query.Where("(tenant_id = '' OR tenant_id = ?)", tenantID)
	} else {
		query = query.Where("tenant_id = ''")
	}

	var translations []models.Translation
	if err := query.Order("translations.key, language").Find(&translations).Error; err != nil {
		return nil, err
	}
	return translations, nil
}

func (r *GormTranslationRepository) Create(ctx context.Context, translation *models.Translation) error {
	if translation.ID == "" {
		translation.ID = uuid.NewString()
	}
	if translation.Version == 0 {
		translation.Version = 1
	}
	return r.db.WithContext(ctx).Create(translation).Error
}

func (r *GormTranslationRepository) Update(ctx context.Context, translation *models.Translation, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Translation{}).
		Where("id = ? AND version = ? AND tenant_id = ?", translation.ID, expectedVersion, translation.TenantID).
		Updates(map[string]any{
			"value":           translation.Value,
			"context":         translation.Context,
			"is_customizable": translation.IsCustomizable,
			"version":         translation.Version,
			"updated_by":      translation.UpdatedBy,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Probing within the same scope keeps a foreign tenant's row
		// indistinguishable from a missing one.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Translation{}).
			Where("id = ? AND tenant_id = ?", translation.ID, translation.TenantID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (r *GormTranslationRepository) BulkCreate(ctx context.Context, translations []models.Translation) error {
	if len(translations) == 0 {
		return nil
	}
	for i := range translations {
		if translations[i].ID == "" {
			translations[i].ID = uuid.NewString()
		}
		if translations[i].Version == 0 {
			translations[i].Version = 1
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(translations, bulkBatchSize).Error
	})
	if utils.IsDBLockError(err) {
		// One retry is enough for SQLite busy windows during concurrent imports.
		logrus.WithError(err).Warn("Bulk create hit lock contention, retrying once")
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.CreateInBatches(translations, bulkBatchSize).Error
		})
	}
	return err
}

func (r *GormTranslationRepository) BulkUpdate(ctx context.Context, translations []models.Translation) error {
	if len(translations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range translations {
			t := &translations[i]
			result := tx.Model(&models.Translation{}).
				Where("id = ? AND version = ? AND tenant_id = ?", t.ID, t.Version-1, t.TenantID).
				Updates(map[string]any{
					"value":      t.Value,
					"version":    t.Version,
					"updated_by": t.UpdatedBy,
					"updated_at": time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrVersionConflict, t.Key)
			}
		}
		return nil
	})
}

func (r *GormTranslationRepository) Search(ctx context.Context, query string, filters SearchFilters) ([]models.Translation, error) {
	limit := filters.Limit
	if limit <= 0 || limit > models.SearchRowLimit {
		limit = models.SearchRowLimit
	}

	pattern := "%" + query + "%"
	q := r.db.WithContext(ctx).Where("(translations.key LIKE ? OR translations.value LIKE ?)", pattern, pattern)

	if filters.Language != "" {
		q = q.Where("language = ?", filters.Language)
	}
	if filters.Module != "" {
		q = q.Where("module = ?", filters.Module)
	}
	if filters.TenantID != "" {
		q = q.Where("(tenant_id = '' OR tenant_id = ?)", filters.TenantID)
	} else {
		q = q.Where("tenant_id = ''")
	}

	var translations []models.Translation
	if err := q.Order("translations.key, language").Limit(limit).Find(&translations).Error; err != nil {
		return nil, err
	}
	return translations, nil
}

func (r *GormTranslationRepository) FindMissingKeys(ctx context.Context, language, module, tenantID string) ([]models.TranslationKey, error) {
	sub := "SELECT 1 FROM translations t WHERE t.key = translation_keys.key AND t.language = ?"
	args := []any{language}
	if tenantID != "" {
		sub += " AND (t.tenant_id = '' OR t.tenant_id = ?)"
		args = append(args, tenantID)
	} else {
		sub += " AND t.tenant_id = ''"
	}

	q := r.db.WithContext(ctx).Where("NOT EXISTS ("+sub+")", args...)
	if module != "" {
		q = q.Where("module = ?", module)
	}

	var keys []models.TranslationKey
	if err := q.Order("priority DESC, translation_keys.key").Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *GormTranslationRepository) GetTranslationStats(ctx context.Context, tenantID string) (*TranslationStats, error) {
	stats := &TranslationStats{
		KeysPerModule: make(map[string]int64),
	}

	if err := r.db.WithContext(ctx).
		Model(&models.TranslationKey{}).
		Count(&stats.TotalRegisteredKeys).Error; err != nil {
		return nil, err
	}

	var moduleRows []struct {
		Module string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.TranslationKey{}).
		Select("module, COUNT(*) AS count").
		Group("module").
		Scan(&moduleRows).Error; err != nil {
		return nil, err
	}
	for _, row := range moduleRows {
		stats.KeysPerModule[row.Module] = row.Count
	}

	// Count distinct keys per (language, module) so a tenant override stacked
	// on a global row is not counted twice.
	q := r.db.WithContext(ctx).
		Model(&models.Translation{}).
		Select("language, module, COUNT(DISTINCT translations.key) AS count")
	if tenantID != "" {
		q = q.Where("(tenant_id = '' OR tenant_id = ?)", tenantID)
	} else {
		q = q.Where("tenant_id = ''")
	}
	if err := q.Group("language, module").Scan(&stats.TranslatedCounts).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *GormTranslationRepository) RegisterKeys(ctx context.Context, keys []models.TranslationKey) (int, error) {
	registered := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range keys {
			key := &keys[i]
			var count int64
			if err := tx.Model(&models.TranslationKey{}).
				Where("translation_keys.key = ?", key.Key).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if key.ID == "" {
				key.ID = uuid.NewString()
			}
			if err := tx.Create(key).Error; err != nil {
				return err
			}
			registered++
		}
		return nil
	})
	return registered, err
}

func (r *GormTranslationRepository) ListKeys(ctx context.Context, module string) ([]models.TranslationKey, error) {
	q := r.db.WithContext(ctx)
	if module != "" {
		q = q.Where("module = ?", module)
	}

	var keys []models.TranslationKey
	if err := q.Order("translation_keys.key").Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// GormAuditRepository is the relational implementation of AuditRepository.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository constructs the audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Append(ctx context.Context, entry *models.TranslationAudit) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormAuditRepository) AppendBatch(ctx context.Context, entries []models.TranslationAudit) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now()
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if entries[i].ChangedAt.IsZero() {
			entries[i].ChangedAt = now
		}
	}
	return r.db.WithContext(ctx).CreateInBatches(entries, bulkBatchSize).Error
}

func (r *GormAuditRepository) ListByKey(ctx context.Context, key string, limit int) ([]models.TranslationAudit, error) {
	if limit <= 0 {
		limit = 100
	}

	var entries []models.TranslationAudit
	err := r.db.WithContext(ctx).
		Where("translation_key = ?", key).
		Order("changed_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormAuditRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("changed_at < ?", cutoff).
		Delete(&models.TranslationAudit{})
	return result.RowsAffected, result.Error
}
