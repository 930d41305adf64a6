package services

import (
	"context"
	"sync"
	"time"

	"transhub/internal/config"
	"transhub/internal/repository"

	"github.com/sirupsen/logrus"
)

// AuditCleanupService purges audit entries older than the configured
// retention window on a daily cadence. A retention of zero disables purging.
type AuditCleanupService struct {
	audit           repository.AuditRepository
	settingsManager *config.SystemSettingsManager
	stopChan        chan struct{}
	stopOnce        sync.Once
	wg              sync.WaitGroup
}

// NewAuditCleanupService constructs an AuditCleanupService.
func NewAuditCleanupService(audit repository.AuditRepository, settingsManager *config.SystemSettingsManager) *AuditCleanupService {
	return &AuditCleanupService{
		audit:           audit,
		settingsManager: settingsManager,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the background purge loop.
func (s *AuditCleanupService) Start() {
	s.wg.Add(1)
	go s.run()
	logrus.Debug("Audit cleanup service started")
}

// Stop terminates the purge loop and waits for it to exit.
func (s *AuditCleanupService) Stop(ctx context.Context) {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logrus.Debug("Audit cleanup service stopped")
	case <-ctx.Done():
		logrus.Warn("Audit cleanup service stop timed out")
	}
}

func (s *AuditCleanupService) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	// One pass shortly after startup so retention changes apply without
	// waiting a full day.
	startup := time.NewTimer(time.Minute)
	defer startup.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-startup.C:
			s.purge()
		case <-ticker.C:
			s.purge()
		}
	}
}

func (s *AuditCleanupService) purge() {
	retentionDays := s.settingsManager.GetSettings().AuditRetentionDays
	if retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	purged, err := s.audit.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Error("Audit purge failed")
		return
	}
	if purged > 0 {
		logrus.WithFields(logrus.Fields{
			"purged":         purged,
			"retention_days": retentionDays,
		}).Info("Purged expired audit entries")
	}
}
