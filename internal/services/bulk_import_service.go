package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	app_errors "transhub/internal/errors"
	"transhub/internal/models"
	"transhub/internal/repository"
	"transhub/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// BulkImportService merges a batch of translations into the store as a
// three-way create / update / skip operation with per-entry error isolation:
// one malformed entry never sinks the rest of the batch.
type BulkImportService struct {
	repo   repository.TranslationRepository
	audit  repository.AuditRepository
	domain *DomainService
	cache  store.Store
}

// NewBulkImportService constructs a BulkImportService.
func NewBulkImportService(
	repo repository.TranslationRepository,
	audit repository.AuditRepository,
	domain *DomainService,
	cache store.Store,
) *BulkImportService {
	return &BulkImportService{repo: repo, audit: audit, domain: domain, cache: cache}
}

// BulkImportParams describes one import request.
type BulkImportParams struct {
	Language     string
	Module       string
	TenantID     string
	CallerID     string
	Overwrite    bool
	ValidateOnly bool
	Translations map[string]string
}

// BulkImportError is one isolated per-entry failure.
type BulkImportError struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// BulkImportResult summarizes a merge.
type BulkImportResult struct {
	Total     int               `json:"total"`
	Created   int               `json:"created"`
	Updated   int               `json:"updated"`
	Skipped   int               `json:"skipped"`
	Errors    []BulkImportError `json:"errors,omitempty"`
	Truncated bool              `json:"errors_truncated,omitempty"`
	DryRun    bool              `json:"dry_run,omitempty"`
}

// FlattenDocument converts an arbitrarily nested JSON object into the flat
// dot-separated key form used by imports, e.g. {"tickets":{"title":"x"}}
// becomes {"tickets.title":"x"}. Non-string leaves are rejected.
func FlattenDocument(raw []byte) (map[string]string, error) {
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, fmt.Errorf("document root must be a JSON object")
	}
	flat := make(map[string]string)
	if err := flattenInto(flat, "", doc); err != nil {
		return nil, err
	}
	return flat, nil
}

func flattenInto(flat map[string]string, prefix string, node gjson.Result) error {
	var walkErr error
	node.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if prefix != "" {
			name = prefix + "." + name
		}
		switch {
		case value.IsObject():
			walkErr = flattenInto(flat, name, value)
		case value.Type == gjson.String:
			flat[name] = value.String()
		default:
			walkErr = fmt.Errorf("value at %q must be a string or nested object", name)
		}
		return walkErr == nil
	})
	return walkErr
}

// Import runs the three-way merge. Payload-level problems (unsupported
// language, reserved module, empty or oversized batch) fail the whole request;
// per-entry problems are collected into the result and the entry is skipped.
// A dry run stops after validation and reports zero counts.
func (s *BulkImportService) Import(ctx context.Context, params BulkImportParams) (*BulkImportResult, error) {
	validation := s.domain.ValidateBulkImport(BulkImportPayload{
		Language:     params.Language,
		Module:       params.Module,
		TenantID:     params.TenantID,
		Translations: params.Translations,
	})
	if len(validation.PayloadViolations) > 0 {
		return nil, app_errors.NewValidationError(strings.Join(validation.PayloadViolations, "; "))
	}

	result := &BulkImportResult{Total: len(params.Translations), DryRun: params.ValidateOnly}
	for _, entryErr := range validation.EntryErrors {
		result.Errors = append(result.Errors, BulkImportError{Key: entryErr.Key, Reason: entryErr.Reason})
	}
	result.Truncated = validation.Truncated

	if params.ValidateOnly {
		return result, nil
	}

	scope := models.GlobalScope()
	if params.TenantID != "" {
		scope = models.TenantScope(params.TenantID)
	}

	existingRows, err := s.repo.FindByLanguage(ctx, params.Language, params.TenantID)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]*models.Translation, len(existingRows))
	for i := range existingRows {
		row := &existingRows[i]
		if row.TenantID == scope.ColumnValue() {
			existing[row.Key] = row
		}
	}

	// Deterministic entry order keeps the write batches stable across runs.
	keys := make([]string, 0, len(params.Translations))
	for key := range params.Translations {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var (
		creates      []models.Translation
		updates      []models.Translation
		auditEntries []models.TranslationAudit
	)

	for _, key := range keys {
		if validation.InvalidKeys[key] {
			continue
		}
		value := params.Translations[key]

		module := params.Module
		if module == "" {
			module = s.domain.ExtractModuleFromKey(key)
		}

		current, found := existing[key]
		switch {
		case !found:
			result.Created++
			creates = append(creates, models.Translation{
				Key:            key,
				Language:       params.Language,
				Value:          value,
				Module:         module,
				TenantID:       scope.ColumnValue(),
				IsCustomizable: s.domain.IsModuleCustomizable(module),
				Version:        1,
				CreatedBy:      params.CallerID,
				UpdatedBy:      params.CallerID,
			})
			auditEntries = append(auditEntries, models.TranslationAudit{
				TranslationKey: key,
				Language:       params.Language,
				NewValue:       value,
				Action:         models.AuditActionCreate,
				TenantID:       scope.ColumnValue(),
				ChangedBy:      params.CallerID,
			})
		case !params.Overwrite:
			result.Skipped++
		default:
			result.Updated++
			updated := *current
			updated.Value = value
			updated.Version = current.Version + 1
			updated.UpdatedBy = params.CallerID
			updates = append(updates, updated)
			oldValue := current.Value
			auditEntries = append(auditEntries, models.TranslationAudit{
				TranslationKey: key,
				Language:       params.Language,
				OldValue:       &oldValue,
				NewValue:       value,
				Action:         models.AuditActionUpdate,
				TenantID:       scope.ColumnValue(),
				ChangedBy:      params.CallerID,
			})
		}
	}

	if len(creates) > 0 {
		if err := s.repo.BulkCreate(ctx, creates); err != nil {
			return nil, err
		}
	}
	if len(updates) > 0 {
		if err := s.repo.BulkUpdate(ctx, updates); err != nil {
			return nil, err
		}
	}

	if len(creates) > 0 || len(updates) > 0 {
		if err := s.audit.AppendBatch(ctx, auditEntries); err != nil {
			return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to record audit entries")
		}
		pattern := s.domain.LanguageCachePattern(params.Language)
		if _, err := s.cache.DelPattern(pattern); err != nil {
			logrus.WithError(err).WithField("pattern", pattern).Error("Bulk cache invalidation failed")
			return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, "cache invalidation failed")
		}
	}

	logrus.WithFields(logrus.Fields{
		"language": params.Language,
		"tenant":   scope.String(),
		"created":  result.Created,
		"updated":  result.Updated,
		"skipped":  result.Skipped,
		"errors":   len(result.Errors),
	}).Info("Bulk import completed")

	return result, nil
}
