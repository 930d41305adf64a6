package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	app_errors "transhub/internal/errors"
	"transhub/internal/models"
	"transhub/internal/repository"
	"transhub/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// KeyRegistryService maintains the registered key catalog that completeness
// and missing-key reports are computed against. Registration is idempotent:
// keys already in the catalog are skipped, never overwritten.
type KeyRegistryService struct {
	repo   repository.TranslationRepository
	domain *DomainService
}

// NewKeyRegistryService constructs a KeyRegistryService.
func NewKeyRegistryService(repo repository.TranslationRepository, domain *DomainService) *KeyRegistryService {
	return &KeyRegistryService{repo: repo, domain: domain}
}

// KeyRegistration declares one key.
type KeyRegistration struct {
	Key          string   `json:"key"`
	Module       string   `json:"module,omitempty"`
	DefaultValue string   `json:"default_value"`
	Params       []string `json:"params,omitempty"`
	Priority     int      `json:"priority,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// RegisterResult summarizes one registration batch.
type RegisterResult struct {
	Requested  int `json:"requested"`
	Registered int `json:"registered"`
	Skipped    int `json:"skipped"`
}

// Register validates and inserts catalog entries. Declared params must be
// valid placeholder names and must appear in the default value.
func (s *KeyRegistryService) Register(ctx context.Context, registrations []KeyRegistration) (*RegisterResult, error) {
	if len(registrations) == 0 {
		return nil, app_errors.NewValidationError("registrations must not be empty")
	}

	entries := make([]models.TranslationKey, 0, len(registrations))
	for _, reg := range registrations {
		violations := s.domain.ValidateKey(reg.Key)
		violations = append(violations, s.domain.ValidateValue(reg.DefaultValue, reg.Key)...)
		for _, param := range reg.Params {
			if !utils.ParamNamePattern.MatchString(param) {
				violations = append(violations, fmt.Sprintf("invalid param name %q for key %q", param, reg.Key))
			} else if !strings.Contains(reg.DefaultValue, "{{"+param+"}}") {
				violations = append(violations, fmt.Sprintf("param %q is not used by the default value of %q", param, reg.Key))
			}
		}
		if len(violations) > 0 {
			return nil, app_errors.NewValidationError(strings.Join(violations, "; "))
		}

		module := reg.Module
		if module == "" {
			module = s.domain.ExtractModuleFromKey(reg.Key)
		}
		entry := models.TranslationKey{
			Key:          reg.Key,
			Module:       module,
			DefaultValue: reg.DefaultValue,
			Priority:     reg.Priority,
			Description:  reg.Description,
		}
		if len(reg.Params) > 0 {
			raw, err := json.Marshal(reg.Params)
			if err != nil {
				return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to encode params")
			}
			entry.Params = datatypes.JSON(raw)
		}
		entries = append(entries, entry)
	}

	registered, err := s.repo.RegisterKeys(ctx, entries)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"requested":  len(entries),
		"registered": registered,
	}).Info("Key registration completed")

	return &RegisterResult{
		Requested:  len(entries),
		Registered: registered,
		Skipped:    len(entries) - registered,
	}, nil
}

// List returns catalog entries, optionally narrowed to one module.
func (s *KeyRegistryService) List(ctx context.Context, module string) ([]models.TranslationKey, error) {
	return s.repo.ListKeys(ctx, module)
}
