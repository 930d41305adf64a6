// Package services contains the translation hub use cases and the pure domain
// rules they compose.
package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"transhub/internal/models"
	"transhub/internal/utils"
)

// DomainService holds the pure translation rules: validation, the override
// resolution hierarchy, customization eligibility, completeness math and
// cache-key derivation. It performs no I/O and keeps no state, so it is safe
// to share across requests.
type DomainService struct{}

// NewDomainService constructs the domain service.
func NewDomainService() *DomainService {
	return &DomainService{}
}

// IsLanguageSupported reports membership in the fixed supported set.
func (s *DomainService) IsLanguageSupported(language string) bool {
	return models.IsSupportedLanguage(language)
}

// ValidateKey checks a translation key and returns every violation found
// rather than stopping at the first.
func (s *DomainService) ValidateKey(key string) []string {
	var violations []string
	if key == "" {
		violations = append(violations, "key must not be empty")
		return violations
	}
	if len(key) > models.MaxKeyLength {
		violations = append(violations, fmt.Sprintf("key exceeds %d characters", models.MaxKeyLength))
	}
	if !utils.TranslationKeyPattern.MatchString(key) {
		violations = append(violations, "key must start with a lowercase letter and contain only letters, digits, dots, underscores and hyphens")
	}
	return violations
}

// ValidateValue checks a translation value, including every {{placeholder}}
// it contains. Invalid placeholders are reported by their raw matched text.
func (s *DomainService) ValidateValue(value, key string) []string {
	var violations []string
	if len(value) > models.MaxValueLength {
		violations = append(violations, fmt.Sprintf("value for %q exceeds %d characters", key, models.MaxValueLength))
	}
	for _, match := range utils.PlaceholderPattern.FindAllStringSubmatch(value, -1) {
		if !utils.ParamNamePattern.MatchString(match[1]) {
			violations = append(violations, fmt.Sprintf("invalid placeholder %s in value for %q", match[0], key))
		}
	}
	return violations
}

// IsModuleCustomizable reports whether tenants may override keys of a module.
// Reserved modules are never customizable, case-insensitively.
func (s *DomainService) IsModuleCustomizable(module string) bool {
	return !models.IsReservedModule(module)
}

// LookupAddress is one step of the resolution hierarchy: an exact-match store
// address, or the literal raw key used as the guaranteed final fallback.
type LookupAddress struct {
	Key      string
	Language string
	TenantID string
	Literal  bool
}

// ResolutionHierarchy produces the ordered lookup addresses for a
// (key, language, tenant) triple: tenant-scoped, then global, then the same
// pair for the "en" base language, and finally the raw key itself so callers
// always receive something displayable.
func (s *DomainService) ResolutionHierarchy(key, language, tenantID string) []LookupAddress {
	addresses := make([]LookupAddress, 0, 5)

	if tenantID != "" {
		addresses = append(addresses, LookupAddress{Key: key, Language: language, TenantID: tenantID})
	}
	addresses = append(addresses, LookupAddress{Key: key, Language: language})

	if language != "en" {
		if tenantID != "" {
			addresses = append(addresses, LookupAddress{Key: key, Language: "en", TenantID: tenantID})
		}
		addresses = append(addresses, LookupAddress{Key: key, Language: "en"})
	}

	addresses = append(addresses, LookupAddress{Key: key, Literal: true})
	return addresses
}

// RequiresTenantIsolation decides the storage scope of a write. Reserved
// modules are always global regardless of the caller's tenant; everything
// else is tenant-scoped exactly when a tenant id was supplied.
func (s *DomainService) RequiresTenantIsolation(key, tenantID string) bool {
	if models.IsReservedModule(s.ExtractModuleFromKey(key)) {
		return false
	}
	return tenantID != ""
}

// ExtractModuleFromKey returns the first dot segment of a key, or the default
// module when the key has none.
func (s *DomainService) ExtractModuleFromKey(key string) string {
	if idx := strings.Index(key, "."); idx > 0 {
		return key[:idx]
	}
	return models.DefaultModule
}

// CalculateCompleteness returns the translated percentage in [0,100].
// Zero registered keys count as vacuously complete.
func (s *DomainService) CalculateCompleteness(totalKeys, translatedKeys int64) int {
	if totalKeys == 0 {
		return 100
	}
	return int(math.Round(float64(translatedKeys) / float64(totalKeys) * 100))
}

// GenerateCacheKey derives the deterministic cache address for a translation:
// translation:{scope}:{language}:{key}, with scope "global" or "tenant:{id}".
func (s *DomainService) GenerateCacheKey(key, language, tenantID string) string {
	scope := "global"
	if tenantID != "" {
		scope = "tenant:" + tenantID
	}
	return fmt.Sprintf("translation:%s:%s:%s", scope, language, key)
}

// LanguageCachePattern is the broad invalidation pattern covering every scope
// and key of one language, used after bulk imports.
func (s *DomainService) LanguageCachePattern(language string) string {
	return fmt.Sprintf("translation:*:%s:*", language)
}

// BulkImportPayload is the validated input of a bulk import.
type BulkImportPayload struct {
	Language     string
	Module       string
	TenantID     string
	Translations map[string]string
}

// BulkEntryError is one entry's aggregated validation failure.
type BulkEntryError struct {
	Key    string
	Reason string
}

// BulkImportValidation separates payload-level violations, which reject the
// whole request, from per-entry failures, which only disqualify their entry.
// EntryErrors is capped to keep responses bounded; InvalidKeys always carries
// the complete set so callers can skip every bad entry even past the cap.
type BulkImportValidation struct {
	PayloadViolations []string
	EntryErrors       []BulkEntryError
	Truncated         bool
	InvalidKeys       map[string]bool
}

// ValidateBulkImport checks a bulk payload: language support, module
// customizability for tenant-scoped imports, a non-empty map, the batch cap,
// and each entry's key, value and module eligibility. Entries are visited in
// sorted key order so the truncated error window is deterministic.
func (s *DomainService) ValidateBulkImport(payload BulkImportPayload) BulkImportValidation {
	validation := BulkImportValidation{InvalidKeys: make(map[string]bool)}

	if !s.IsLanguageSupported(payload.Language) {
		validation.PayloadViolations = append(validation.PayloadViolations,
			fmt.Sprintf("unsupported language %q", payload.Language))
	}
	if payload.Module != "" && payload.TenantID != "" && !s.IsModuleCustomizable(payload.Module) {
		validation.PayloadViolations = append(validation.PayloadViolations,
			fmt.Sprintf("module %q is reserved and cannot be tenant-customized", payload.Module))
	}
	if len(payload.Translations) == 0 {
		validation.PayloadViolations = append(validation.PayloadViolations,
			"translations map must not be empty")
	}
	if len(payload.Translations) > models.MaxBulkImportEntries {
		validation.PayloadViolations = append(validation.PayloadViolations,
			fmt.Sprintf("batch exceeds the maximum of %d entries", models.MaxBulkImportEntries))
	}

	keys := make([]string, 0, len(payload.Translations))
	for key := range payload.Translations {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		reasons := s.ValidateKey(key)
		reasons = append(reasons, s.ValidateValue(payload.Translations[key], key)...)

		module := payload.Module
		if module == "" {
			module = s.ExtractModuleFromKey(key)
		}
		if payload.TenantID != "" && !s.IsModuleCustomizable(module) {
			reasons = append(reasons, fmt.Sprintf("module %q is reserved and cannot be tenant-customized", module))
		}

		if len(reasons) == 0 {
			continue
		}
		validation.InvalidKeys[key] = true
		if len(validation.EntryErrors) >= models.MaxBulkImportErrors {
			validation.Truncated = true
			continue
		}
		validation.EntryErrors = append(validation.EntryErrors, BulkEntryError{
			Key:    key,
			Reason: strings.Join(reasons, "; "),
		})
	}

	return validation
}
