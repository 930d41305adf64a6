package services

import (
	"context"
	"strings"
	"time"

	app_errors "transhub/internal/errors"
	"transhub/internal/models"
	"transhub/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TenantAuthService manages tenant access keys and authenticates requests
// carrying them. A presented key has the form "{tenant_id}.{secret}"; only
// the bcrypt hash of the secret is ever stored.
type TenantAuthService struct {
	db *gorm.DB
}

// NewTenantAuthService constructs a TenantAuthService.
func NewTenantAuthService(db *gorm.DB) *TenantAuthService {
	return &TenantAuthService{db: db}
}

// Authenticate resolves a presented access key to its tenant id. Disabled
// keys and unknown tenants fail identically.
func (s *TenantAuthService) Authenticate(ctx context.Context, presented string) (string, error) {
	tenantID, secret, found := strings.Cut(presented, ".")
	if !found || tenantID == "" || secret == "" {
		return "", app_errors.ErrUnauthorized
	}

	var keys []models.TenantAccessKey
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND enabled = ?", tenantID, true).
		Find(&keys).Error
	if err != nil {
		return "", app_errors.ParseDBError(err)
	}

	for i := range keys {
		if bcrypt.CompareHashAndPassword([]byte(keys[i].KeyHash), []byte(secret)) == nil {
			s.touch(keys[i].ID)
			return tenantID, nil
		}
	}
	return "", app_errors.ErrUnauthorized
}

// touch records key usage without blocking the request path.
func (s *TenantAuthService) touch(keyID string) {
	go func() {
		now := time.Now()
		err := s.db.Model(&models.TenantAccessKey{}).
			Where("id = ?", keyID).
			Update("last_used_at", now).Error
		if err != nil {
			logrus.WithError(err).Debug("Failed to record access key usage")
		}
	}()
}

// CreatedAccessKey carries the one-time plaintext key returned on creation.
type CreatedAccessKey struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Key is shown exactly once; only its hash is persisted.
	Key string `json:"key"`
}

// CreateKey mints a new access key for a tenant and returns the plaintext
// form exactly once.
func (s *TenantAuthService) CreateKey(ctx context.Context, tenantID, name string) (*CreatedAccessKey, error) {
	if tenantID == "" {
		return nil, app_errors.NewValidationError("tenant_id must not be empty")
	}
	if name == "" {
		return nil, app_errors.NewValidationError("name must not be empty")
	}

	secret := utils.RandomSecret(32)
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to hash access key")
	}

	record := &models.TenantAccessKey{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Name:     name,
		KeyHash:  string(hash),
		Enabled:  true,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}

	return &CreatedAccessKey{
		ID:   record.ID,
		Name: record.Name,
		Key:  tenantID + "." + secret,
	}, nil
}

// ListKeys returns a tenant's access keys without hash material.
func (s *TenantAuthService) ListKeys(ctx context.Context, tenantID string) ([]models.TenantAccessKey, error) {
	var keys []models.TenantAccessKey
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&keys).Error
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	for i := range keys {
		keys[i].KeyHash = ""
	}
	return keys, nil
}

// RevokeKey disables one access key.
func (s *TenantAuthService) RevokeKey(ctx context.Context, keyID string) error {
	result := s.db.WithContext(ctx).Model(&models.TenantAccessKey{}).
		Where("id = ?", keyID).
		Update("enabled", false)
	if result.Error != nil {
		return app_errors.ParseDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return app_errors.ErrResourceNotFound
	}
	return nil
}
