package services

import (
	"context"
	"sort"

	"transhub/internal/config"
	app_errors "transhub/internal/errors"
	"transhub/internal/repository"
	"transhub/internal/utils"

	"github.com/tidwall/sjson"
)

// ExportService renders one language's catalog as a nested JSON document,
// the inverse of bulk import flattening. Tenant overrides shadow global rows
// for the same key. Large payloads are compressed on request.
type ExportService struct {
	repo            repository.TranslationRepository
	domain          *DomainService
	settingsManager *config.SystemSettingsManager
}

// NewExportService constructs an ExportService.
func NewExportService(
	repo repository.TranslationRepository,
	domain *DomainService,
	settingsManager *config.SystemSettingsManager,
) *ExportService {
	return &ExportService{repo: repo, domain: domain, settingsManager: settingsManager}
}

// ExportParams describes one export request.
type ExportParams struct {
	Language string
	Module   string
	TenantID string
	// Encoding is one of identity, gzip, br or zstd. Payloads below the
	// configured threshold are returned uncompressed regardless.
	Encoding string
}

// ExportResult carries the rendered document and its effective encoding.
type ExportResult struct {
	Payload  []byte
	Encoding string
	Language string
	Count    int
}

// Export builds the nested document, e.g. rows for "tickets.title" and
// "tickets.status.open" become {"tickets":{"title":...,"status":{"open":...}}}.
func (s *ExportService) Export(ctx context.Context, params ExportParams) (*ExportResult, error) {
	if !s.domain.IsLanguageSupported(params.Language) {
		return nil, app_errors.NewValidationError("unsupported language \"" + params.Language + "\"")
	}

	rows, err := s.repo.FindByLanguage(ctx, params.Language, params.TenantID)
	if err != nil {
		return nil, err
	}

	// Global rows first, then tenant overrides shadowing them.
	merged := make(map[string]string, len(rows))
	for _, row := range rows {
		if params.Module != "" && row.Module != params.Module {
			continue
		}
		if row.TenantID == "" {
			merged[row.Key] = row.Value
		}
	}
	for _, row := range rows {
		if params.Module != "" && row.Module != params.Module {
			continue
		}
		if row.TenantID != "" {
			merged[row.Key] = row.Value
		}
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc := []byte("{}")
	for _, key := range keys {
		doc, err = sjson.SetBytes(doc, key, merged[key])
		if err != nil {
			return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to render export document")
		}
	}

	encoding := params.Encoding
	if encoding == "" {
		encoding = utils.EncodingIdentity
	}
	if len(doc) < s.settingsManager.GetSettings().ExportCompressionMin {
		encoding = utils.EncodingIdentity
	}
	payload, err := utils.Compress(doc, encoding)
	if err != nil {
		return nil, app_errors.NewValidationError(err.Error())
	}

	return &ExportResult{
		Payload:  payload,
		Encoding: encoding,
		Language: params.Language,
		Count:    len(merged),
	}, nil
}
