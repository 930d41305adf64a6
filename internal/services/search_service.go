package services

import (
	"context"
	"strings"

	"transhub/internal/config"
	app_errors "transhub/internal/errors"
	"transhub/internal/models"
	"transhub/internal/repository"
)

// SearchService answers substring searches over keys and values with
// page-based slicing. Tenant callers see global rows plus their own
// overrides; other tenants' rows are never surfaced.
type SearchService struct {
	repo            repository.TranslationRepository
	domain          *DomainService
	settingsManager *config.SystemSettingsManager
}

// NewSearchService constructs a SearchService.
func NewSearchService(
	repo repository.TranslationRepository,
	domain *DomainService,
	settingsManager *config.SystemSettingsManager,
) *SearchService {
	return &SearchService{repo: repo, domain: domain, settingsManager: settingsManager}
}

// SearchParams describes one search request. IncludeGlobal and IncludeTenant
// narrow the returned page to one visibility scope; when both or neither are
// set, every visible row is kept.
type SearchParams struct {
	Query         string
	Language      string
	Module        string
	TenantID      string
	IncludeGlobal bool
	IncludeTenant bool
	Page          int
	PageSize      int
}

// SearchResult is one page of matches. Total, Offset and HasMore are computed
// against the match set before the scope filter trims the page, so paging
// stays stable regardless of which scopes the caller keeps.
type SearchResult struct {
	Items    []models.Translation `json:"items"`
	Total    int                  `json:"total"`
	Offset   int                  `json:"offset"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	HasMore  bool                 `json:"has_more"`
}

// Search runs a substring match over key and value. The page size is clamped
// to the configured result limit; the fetched rows are sliced to the requested
// page and then thinned to the requested scopes.
func (s *SearchService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil, app_errors.NewValidationError("search query must not be empty")
	}
	if params.Language != "" && !s.domain.IsLanguageSupported(params.Language) {
		return nil, app_errors.NewValidationError("unsupported language \"" + params.Language + "\"")
	}

	maxPageSize := s.settingsManager.GetSettings().SearchResultLimit
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}

	rows, err := s.repo.Search(ctx, query, repository.SearchFilters{
		Language: params.Language,
		Module:   params.Module,
		TenantID: params.TenantID,
		Limit:    models.SearchRowLimit,
	})
	if err != nil {
		return nil, err
	}

	offset := (params.Page - 1) * params.PageSize
	result := &SearchResult{
		Items:    []models.Translation{},
		Total:    len(rows),
		Offset:   offset,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	if offset >= len(rows) {
		return result, nil
	}

	end := offset + params.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	result.HasMore = end < len(rows)

	for _, row := range rows[offset:end] {
		if !scopeWanted(row, params) {
			continue
		}
		result.Items = append(result.Items, row)
	}
	return result, nil
}

// scopeWanted applies the global/tenant visibility filter to one row of the
// current page. Filtering only bites when exactly one flag is set.
func scopeWanted(row models.Translation, params SearchParams) bool {
	switch {
	case params.IncludeGlobal == params.IncludeTenant:
		return true
	case params.IncludeGlobal:
		return row.TenantID == ""
	default:
		return row.TenantID != "" && row.TenantID == params.TenantID
	}
}
