package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"transhub/internal/config"
	app_errors "transhub/internal/errors"
	"transhub/internal/models"
	"transhub/internal/repository"
	"transhub/internal/store"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TranslationService orchestrates the single-record use cases: create,
// update, per-language listing, resolution and audit history. It composes the
// pure domain rules with the repository, the cache invalidation sink and the
// audit trail.
type TranslationService struct {
	repo            repository.TranslationRepository
	audit           repository.AuditRepository
	domain          *DomainService
	cache           store.Store
	settingsManager *config.SystemSettingsManager
}

// NewTranslationService constructs a TranslationService.
func NewTranslationService(
	repo repository.TranslationRepository,
	audit repository.AuditRepository,
	domain *DomainService,
	cache store.Store,
	settingsManager *config.SystemSettingsManager,
) *TranslationService {
	return &TranslationService{
		repo:            repo,
		audit:           audit,
		domain:          domain,
		cache:           cache,
		settingsManager: settingsManager,
	}
}

// CreateTranslationParams captures all fields required to create a translation.
type CreateTranslationParams struct {
	Key            string
	Language       string
	Value          string
	Module         string
	Context        string
	IsGlobal       bool
	IsCustomizable bool
	CallerID       string
	// TenantID is only honored when IsGlobal is false.
	TenantID string
}

// Create validates and persists a new translation, invalidates its cache
// address and appends a create audit entry.
func (s *TranslationService) Create(ctx context.Context, params CreateTranslationParams) (*models.Translation, error) {
	if !s.domain.IsLanguageSupported(params.Language) {
		return nil, app_errors.NewValidationError("unsupported language \"" + params.Language + "\"")
	}

	violations := s.domain.ValidateKey(params.Key)
	violations = append(violations, s.domain.ValidateValue(params.Value, params.Key)...)
	if len(violations) > 0 {
		return nil, app_errors.NewValidationError(strings.Join(violations, "; "))
	}

	module := params.Module
	if module == "" {
		module = s.domain.ExtractModuleFromKey(params.Key)
	}

	if !params.IsGlobal && params.TenantID != "" && !s.domain.IsModuleCustomizable(module) {
		return nil, app_errors.NewAPIError(app_errors.ErrForbidden,
			"module \""+module+"\" is reserved and cannot be tenant-customized")
	}

	effectiveTenant := ""
	if !params.IsGlobal {
		effectiveTenant = params.TenantID
	}
	scope := models.GlobalScope()
	if s.domain.RequiresTenantIsolation(params.Key, effectiveTenant) {
		scope = models.TenantScope(effectiveTenant)
	}

	if _, err := s.repo.FindExact(ctx, params.Key, params.Language, scope); err == nil {
		return nil, app_errors.NewAPIError(app_errors.ErrDuplicateResource,
			"translation already exists for this key, language and scope")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	translation := &models.Translation{
		Key:            params.Key,
		Language:       params.Language,
		Value:          params.Value,
		Module:         module,
		Context:        params.Context,
		TenantID:       scope.ColumnValue(),
		IsCustomizable: params.IsCustomizable,
		Version:        1,
		CreatedBy:      params.CallerID,
		UpdatedBy:      params.CallerID,
	}
	if err := s.repo.Create(ctx, translation); err != nil {
		return nil, err
	}

	if err := s.invalidate(translation); err != nil {
		return nil, err
	}
	if err := s.auditCreate(ctx, translation); err != nil {
		return nil, err
	}

	return translation, nil
}

// UpdateTranslationParams captures updatable fields for a translation.
type UpdateTranslationParams struct {
	ID             string
	Value          *string
	Context        *string
	IsCustomizable *bool
	CallerID       string
	TenantID       string
}

// Update applies a partial update with an optimistic compare-and-swap on the
// version counter. Rows outside the caller's tenant scope surface as not
// found, deliberately indistinguishable from access denied.
func (s *TranslationService) Update(ctx context.Context, params UpdateTranslationParams) (*models.Translation, error) {
	existing, err := s.repo.FindByID(ctx, params.ID, params.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_errors.ErrResourceNotFound
		}
		return nil, err
	}

	if params.Value != nil {
		if violations := s.domain.ValidateValue(*params.Value, existing.Key); len(violations) > 0 {
			return nil, app_errors.NewValidationError(strings.Join(violations, "; "))
		}
	}

	if !existing.IsCustomizable {
		return nil, app_errors.NewAPIError(app_errors.ErrForbidden, "this translation cannot be customized")
	}

	updated := *existing
	if params.Value != nil {
		updated.Value = *params.Value
	}
	if params.Context != nil {
		updated.Context = *params.Context
	}
	if params.IsCustomizable != nil {
		updated.IsCustomizable = *params.IsCustomizable
	}
	updated.Version = existing.Version + 1
	updated.UpdatedBy = params.CallerID
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated, existing.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, app_errors.ErrVersionConflict
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_errors.ErrResourceNotFound
		}
		return nil, err
	}

	// Invalidate the address derived from the existing record, not the
	// request, so a stale cached value can never outlive the update.
	if err := s.invalidate(existing); err != nil {
		return nil, err
	}

	oldValue := existing.Value
	entry := &models.TranslationAudit{
		TranslationKey: existing.Key,
		Language:       existing.Language,
		OldValue:       &oldValue,
		NewValue:       updated.Value,
		Action:         models.AuditActionUpdate,
		TenantID:       existing.TenantID,
		ChangedBy:      params.CallerID,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to record audit entry")
	}

	return &updated, nil
}

// ResolveResult is the outcome of one resolution-hierarchy walk.
type ResolveResult struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Value    string `json:"value"`
	// Source is "cache", "store" or "fallback".
	Source string `json:"source"`
}

// Resolve walks the override hierarchy for a (key, language, tenant) triple
// with a cache-aside read at every address. The raw key is the guaranteed
// final fallback, so callers always receive something displayable.
func (s *TranslationService) Resolve(ctx context.Context, key, language, tenantID string) (*ResolveResult, error) {
	if !s.domain.IsLanguageSupported(language) {
		return nil, app_errors.NewValidationError("unsupported language \"" + language + "\"")
	}
	if violations := s.domain.ValidateKey(key); len(violations) > 0 {
		return nil, app_errors.NewValidationError(strings.Join(violations, "; "))
	}

	ttl := time.Duration(s.settingsManager.GetSettings().ResolveCacheTTL) * time.Minute

	for _, addr := range s.domain.ResolutionHierarchy(key, language, tenantID) {
		if addr.Literal {
			return &ResolveResult{Key: key, Language: language, Value: key, Source: "fallback"}, nil
		}

		cacheKey := s.domain.GenerateCacheKey(addr.Key, addr.Language, addr.TenantID)
		if cached, err := s.cache.Get(cacheKey); err == nil {
			return &ResolveResult{Key: key, Language: addr.Language, Value: string(cached), Source: "cache"}, nil
		} else if !errors.Is(err, store.ErrNotFound) {
			logrus.WithError(err).WithField("cache_key", cacheKey).Warn("Cache read failed, falling through to store")
		}

		scope := models.GlobalScope()
		if addr.TenantID != "" {
			scope = models.TenantScope(addr.TenantID)
		}
		translation, err := s.repo.FindExact(ctx, addr.Key, addr.Language, scope)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		if err := s.cache.Set(cacheKey, []byte(translation.Value), ttl); err != nil {
			logrus.WithError(err).WithField("cache_key", cacheKey).Warn("Cache write failed")
		}
		return &ResolveResult{Key: key, Language: addr.Language, Value: translation.Value, Source: "store"}, nil
	}

	// Unreachable: the hierarchy always ends with the literal fallback.
	return &ResolveResult{Key: key, Language: language, Value: key, Source: "fallback"}, nil
}

// ListByLanguage returns all translations visible to the caller for one
// language: global rows plus the caller tenant's overrides.
func (s *TranslationService) ListByLanguage(ctx context.Context, language, tenantID string) ([]models.Translation, error) {
	if !s.domain.IsLanguageSupported(language) {
		return nil, app_errors.NewValidationError("unsupported language \"" + language + "\"")
	}
	return s.repo.FindByLanguage(ctx, language, tenantID)
}

// History returns the audit trail of one key, newest first.
func (s *TranslationService) History(ctx context.Context, key string, limit int) ([]models.TranslationAudit, error) {
	return s.audit.ListByKey(ctx, key, limit)
}

func (s *TranslationService) invalidate(t *models.Translation) error {
	cacheKey := s.domain.GenerateCacheKey(t.Key, t.Language, t.TenantID)
	if err := s.cache.Delete(cacheKey); err != nil {
		logrus.WithError(err).WithField("cache_key", cacheKey).Error("Cache invalidation failed")
		return app_errors.NewAPIError(app_errors.ErrInternalServer, "cache invalidation failed")
	}
	return nil
}

func (s *TranslationService) auditCreate(ctx context.Context, t *models.Translation) error {
	entry := &models.TranslationAudit{
		TranslationKey: t.Key,
		Language:       t.Language,
		NewValue:       t.Value,
		Action:         models.AuditActionCreate,
		TenantID:       t.TenantID,
		ChangedBy:      t.CreatedBy,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		return app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to record audit entry")
	}
	return nil
}
