// Package container wires the application's dependency graph.
package container

import (
	"transhub/internal/app"
	"transhub/internal/config"
	"transhub/internal/db"
	"transhub/internal/handler"
	"transhub/internal/repository"
	"transhub/internal/router"
	"transhub/internal/services"
	"transhub/internal/store"

	"go.uber.org/dig"
)

// BuildContainer creates the dig container with every provider registered.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		// Infrastructure
		config.NewManager,
		config.NewSystemSettingsManager,
		db.NewDB,
		store.NewStore,

		// Repositories
		func(d *repository.GormTranslationRepository) repository.TranslationRepository { return d },
		func(d *repository.GormAuditRepository) repository.AuditRepository { return d },
		repository.NewGormTranslationRepository,
		repository.NewGormAuditRepository,

		// Services
		services.NewDomainService,
		services.NewTranslationService,
		services.NewBulkImportService,
		services.NewSearchService,
		services.NewStatsService,
		services.NewExportService,
		services.NewKeyRegistryService,
		services.NewSeedService,
		services.NewTenantAuthService,
		services.NewAuditCleanupService,

		// HTTP surface
		handler.NewServer,
		router.NewRouter,

		// Application
		app.NewApp,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}
