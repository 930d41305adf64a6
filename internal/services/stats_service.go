package services

import (
	"context"
	"sort"

	app_errors "transhub/internal/errors"
	"transhub/internal/models"
	"transhub/internal/repository"
)

// Gap priorities for the missing-key report.
const (
	GapPriorityHigh   = "high"
	GapPriorityMedium = "medium"
	GapPriorityLow    = "low"
)

// StatsService computes translation completeness against the registered key
// catalog and reports untranslated gaps per language and module.
type StatsService struct {
	repo   repository.TranslationRepository
	domain *DomainService
}

// NewStatsService constructs a StatsService.
func NewStatsService(repo repository.TranslationRepository, domain *DomainService) *StatsService {
	return &StatsService{repo: repo, domain: domain}
}

// ModuleStats is per-module completeness within one language.
type ModuleStats struct {
	Module       string `json:"module"`
	TotalKeys    int64  `json:"total_keys"`
	Translated   int64  `json:"translated"`
	Completeness int    `json:"completeness"`
}

// LanguageStats is aggregate completeness for one language. The module
// breakdown is only populated when the caller asks for it.
type LanguageStats struct {
	Language     string        `json:"language"`
	TotalKeys    int64         `json:"total_keys"`
	Translated   int64         `json:"translated"`
	Completeness int           `json:"completeness"`
	Modules      []ModuleStats `json:"modules,omitempty"`
}

// StatsOverview aggregates across the whole report.
type StatsOverview struct {
	MaxTotalKeys      int64 `json:"max_total_keys"`
	TotalTranslated   int64 `json:"total_translated"`
	LanguagesObserved int   `json:"languages_observed"`
	ModulesObserved   int   `json:"modules_observed"`
}

// StatsReport is the full completeness matrix.
type StatsReport struct {
	TotalRegisteredKeys int64           `json:"total_registered_keys"`
	Overview            StatsOverview   `json:"overview"`
	Languages           []LanguageStats `json:"languages"`
}

// StatsParams narrows a completeness request. Empty Language covers every
// supported language; empty Module covers every registered module.
type StatsParams struct {
	Language               string
	Module                 string
	TenantID               string
	IncludeModuleBreakdown bool
}

// GetStats builds the completeness matrix, optionally narrowed to one
// language or module. Tenant callers see completeness over global rows plus
// their overrides.
func (s *StatsService) GetStats(ctx context.Context, params StatsParams) (*StatsReport, error) {
	if params.Language != "" && !s.domain.IsLanguageSupported(params.Language) {
		return nil, app_errors.NewValidationError("unsupported language \"" + params.Language + "\"")
	}

	raw, err := s.repo.GetTranslationStats(ctx, params.TenantID)
	if err != nil {
		return nil, err
	}

	// Index translated counts by language then module.
	translated := make(map[string]map[string]int64)
	for _, row := range raw.TranslatedCounts {
		byModule, ok := translated[row.Language]
		if !ok {
			byModule = make(map[string]int64)
			translated[row.Language] = byModule
		}
		byModule[row.Module] = row.Count
	}

	modules := make([]string, 0, len(raw.KeysPerModule))
	for module := range raw.KeysPerModule {
		if params.Module != "" && module != params.Module {
			continue
		}
		modules = append(modules, module)
	}
	sort.Strings(modules)

	languages := models.SupportedLanguages
	if params.Language != "" {
		languages = []string{params.Language}
	}

	var totalKeys int64
	for _, module := range modules {
		totalKeys += raw.KeysPerModule[module]
	}

	report := &StatsReport{TotalRegisteredKeys: raw.TotalRegisteredKeys}
	report.Overview.ModulesObserved = len(modules)
	for _, language := range languages {
		lang := LanguageStats{Language: language, TotalKeys: totalKeys}
		for _, module := range modules {
			total := raw.KeysPerModule[module]
			count := translated[language][module]
			if count > total {
				// Rows can exist for keys never registered in the catalog.
				count = total
			}
			lang.Translated += count
			if params.IncludeModuleBreakdown {
				lang.Modules = append(lang.Modules, ModuleStats{
					Module:       module,
					TotalKeys:    total,
					Translated:   count,
					Completeness: s.domain.CalculateCompleteness(total, count),
				})
			}
		}
		lang.Completeness = s.domain.CalculateCompleteness(totalKeys, lang.Translated)
		report.Overview.TotalTranslated += lang.Translated
		if lang.TotalKeys > report.Overview.MaxTotalKeys {
			report.Overview.MaxTotalKeys = lang.TotalKeys
		}
		if lang.Translated > 0 {
			report.Overview.LanguagesObserved++
		}
		report.Languages = append(report.Languages, lang)
	}
	return report, nil
}

// MissingKeyGap is one module's untranslated keys for a language.
type MissingKeyGap struct {
	Module   string   `json:"module"`
	Keys     []string `json:"keys"`
	Priority string   `json:"priority"`
}

// MissingKeysReport lists gaps for one language, largest modules first.
type MissingKeysReport struct {
	Language string          `json:"language"`
	Total    int             `json:"total"`
	Gaps     []MissingKeyGap `json:"gaps"`
}

// GetMissingKeys diffs the registered catalog against existing rows for one
// language and ranks each module gap. Reserved modules and large gaps rank
// high, small gaps low.
func (s *StatsService) GetMissingKeys(ctx context.Context, language, module, tenantID string) (*MissingKeysReport, error) {
	if !s.domain.IsLanguageSupported(language) {
		return nil, app_errors.NewValidationError("unsupported language \"" + language + "\"")
	}

	missing, err := s.repo.FindMissingKeys(ctx, language, module, tenantID)
	if err != nil {
		return nil, err
	}

	byModule := make(map[string][]string)
	for _, key := range missing {
		byModule[key.Module] = append(byModule[key.Module], key.Key)
	}

	report := &MissingKeysReport{Language: language, Total: len(missing), Gaps: []MissingKeyGap{}}
	for mod, keys := range byModule {
		sort.Strings(keys)
		report.Gaps = append(report.Gaps, MissingKeyGap{
			Module:   mod,
			Keys:     keys,
			Priority: s.gapPriority(mod, len(keys)),
		})
	}
	sort.Slice(report.Gaps, func(i, j int) bool {
		if len(report.Gaps[i].Keys) != len(report.Gaps[j].Keys) {
			return len(report.Gaps[i].Keys) > len(report.Gaps[j].Keys)
		}
		return report.Gaps[i].Module < report.Gaps[j].Module
	})
	return report, nil
}

func (s *StatsService) gapPriority(module string, missing int) string {
	if models.IsReservedModule(module) || missing > 10 {
		return GapPriorityHigh
	}
	if missing <= 3 {
		return GapPriorityLow
	}
	return GapPriorityMedium
}
