package services

import (
	"context"

	"transhub/internal/models"
	"transhub/internal/repository"

	"github.com/sirupsen/logrus"
)

// SeedService installs the baseline catalog: the registered keys every
// deployment ships with and their global English translations. Seeding is
// idempotent, so it can run on every startup or via the seed command.
type SeedService struct {
	repo     repository.TranslationRepository
	registry *KeyRegistryService
	domain   *DomainService
}

// NewSeedService constructs a SeedService.
func NewSeedService(repo repository.TranslationRepository, registry *KeyRegistryService, domain *DomainService) *SeedService {
	return &SeedService{repo: repo, registry: registry, domain: domain}
}

// SeedResult summarizes one seeding pass.
type SeedResult struct {
	KeysRegistered      int `json:"keys_registered"`
	TranslationsCreated int `json:"translations_created"`
}

var baselineEntries = []KeyRegistration{
	{Key: "common.save", DefaultValue: "Save"},
	{Key: "common.cancel", DefaultValue: "Cancel"},
	{Key: "common.delete", DefaultValue: "Delete"},
	{Key: "common.search", DefaultValue: "Search"},
	{Key: "common.loading", DefaultValue: "Loading..."},
	{Key: "common.confirm", DefaultValue: "Confirm"},
	{Key: "common.greeting", DefaultValue: "Hello, {{name}}!", Params: []string{"name"}},
	{Key: "auth.login", DefaultValue: "Log in", Priority: 10},
	{Key: "auth.logout", DefaultValue: "Log out", Priority: 10},
	{Key: "auth.invalid_credentials", DefaultValue: "Invalid credentials", Priority: 10},
	{Key: "auth.session_expired", DefaultValue: "Your session has expired, please log in again", Priority: 10},
	{Key: "system.maintenance", DefaultValue: "The system is under maintenance", Priority: 10},
	{Key: "system.error.generic", DefaultValue: "Something went wrong, please try again", Priority: 10},
	{Key: "core.version", DefaultValue: "Version {{version}}", Params: []string{"version"}, Priority: 5},
}

// Seed registers the baseline keys and creates any missing global English
// rows from their default values. Existing rows are never touched.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	registered, err := s.registry.Register(ctx, baselineEntries)
	if err != nil {
		return nil, err
	}

	existingRows, err := s.repo.FindByLanguage(ctx, "en", "")
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(existingRows))
	for _, row := range existingRows {
		existing[row.Key] = true
	}

	var creates []models.Translation
	for _, entry := range baselineEntries {
		if existing[entry.Key] {
			continue
		}
		creates = append(creates, models.Translation{
			Key:            entry.Key,
			Language:       "en",
			Value:          entry.DefaultValue,
			Module:         s.domain.ExtractModuleFromKey(entry.Key),
			IsCustomizable: s.domain.IsModuleCustomizable(s.domain.ExtractModuleFromKey(entry.Key)),
			Version:        1,
			CreatedBy:      "seed",
			UpdatedBy:      "seed",
		})
	}
	if len(creates) > 0 {
		if err := s.repo.BulkCreate(ctx, creates); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"keys_registered":      registered.Registered,
		"translations_created": len(creates),
	}).Info("Seed completed")

	return &SeedResult{
		KeysRegistered:      registered.Registered,
		TranslationsCreated: len(creates),
	}, nil
}
