// Package app provides the main application logic and lifecycle management.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"transhub/internal/config"
	"transhub/internal/i18n"
	"transhub/internal/models"
	"transhub/internal/services"
	"transhub/internal/store"
	"transhub/internal/types"
	"transhub/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// App holds all services and manages the application lifecycle.
type App struct {
	engine              *gin.Engine
	configManager       types.ConfigManager
	settingsManager     *config.SystemSettingsManager
	auditCleanupService *services.AuditCleanupService
	storage             store.Store
	db                  *gorm.DB
	httpServer          *http.Server
}

// AppParams defines the dependencies for the App.
type AppParams struct {
	dig.In
	Engine              *gin.Engine
	ConfigManager       types.ConfigManager
	SettingsManager     *config.SystemSettingsManager
	AuditCleanupService *services.AuditCleanupService
	Storage             store.Store
	DB                  *gorm.DB
}

// NewApp is the constructor for App, with dependencies injected by dig.
func NewApp(params AppParams) *App {
	return &App{
		engine:              params.Engine,
		configManager:       params.ConfigManager,
		settingsManager:     params.SettingsManager,
		auditCleanupService: params.AuditCleanupService,
		storage:             params.Storage,
		db:                  params.DB,
	}
}

// Start runs the application, it is a non-blocking call.
func (a *App) Start() error {
	// Initialize i18n
	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to initialize i18n: %w", err)
	}
	logrus.Info("i18n initialized successfully.")

	// Master node performs initialization
	if a.configManager.IsMaster() {
		logrus.Info("Starting as Master Node.")

		if err := a.storage.Clear(); err != nil {
			return fmt.Errorf("cache cleanup failed: %w", err)
		}

		// Database migration
		if err := a.db.AutoMigrate(
			&models.SystemSetting{},
			&models.Translation{},
			&models.TranslationKey{},
			&models.TranslationAudit{},
			&models.TenantAccessKey{},
		); err != nil {
			return fmt.Errorf("database auto-migration failed: %w", err)
		}
		logrus.Info("Database auto-migration completed.")

		// Initialize system settings
		if err := a.settingsManager.EnsureSettingsInitialized(a.db); err != nil {
			return fmt.Errorf("failed to initialize system settings: %w", err)
		}
		logrus.Info("System settings initialized in DB.")

		// Services that only start on Master node
		a.auditCleanupService.Start()
	} else {
		logrus.Info("Starting as Slave Node.")
	}

	// Display configuration and start the HTTP server
	a.configManager.DisplayServerConfig()

	serverConfig := a.configManager.GetEffectiveServerConfig()
	a.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:        a.engine,
		ReadTimeout:    time.Duration(serverConfig.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(serverConfig.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(serverConfig.IdleTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logrus.Infof("Translation hub started successfully on Version: %s", version.Version)
		logrus.Infof("Server address: http://%s:%d", serverConfig.Host, serverConfig.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server startup failed: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the application.
func (a *App) Stop(ctx context.Context) {
	logrus.Info("Shutting down server...")

	serverConfig := a.configManager.GetEffectiveServerConfig()
	totalTimeout := time.Duration(serverConfig.GracefulShutdownTimeout) * time.Second

	// Reserve a share of the shutdown budget for background services
	httpShutdownTimeout := totalTimeout - 5*time.Second
	if httpShutdownTimeout <= 0 {
		httpShutdownTimeout = totalTimeout / 2
	}
	httpShutdownCtx, cancelHTTPShutdown := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancelHTTPShutdown()

	httpShutdownStart := time.Now()
	if err := a.httpServer.Shutdown(httpShutdownCtx); err != nil {
		logrus.Debug("HTTP server graceful shutdown timed out, forcing remaining connections to close.")
		if closeErr := a.httpServer.Close(); closeErr != nil {
			logrus.Errorf("Error forcing HTTP server to close: %v", closeErr)
		}
	}
	logrus.Infof("HTTP server has been shut down. (took %v)", time.Since(httpShutdownStart))

	if serverConfig.IsMaster {
		a.auditCleanupService.Stop(ctx)
	}

	// Close storage and database connections in parallel for faster shutdown
	var closeWg sync.WaitGroup

	if a.storage != nil {
		closeWg.Add(1)
		go func() {
			defer closeWg.Done()
			if err := a.storage.Close(); err != nil {
				logrus.WithError(err).Error("Error closing storage")
			}
		}()
	}

	if a.db != nil {
		closeWg.Add(1)
		go func() {
			defer closeWg.Done()
			closeDBConnection(a.db, "Main database")
		}()
	}

	closeWg.Wait()
	logrus.Info("Server exited gracefully")
}

// closeDBConnection gracefully closes a GORM database connection with timeout.
func closeDBConnection(gormDB *gorm.DB, name string) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		logrus.Errorf("Error getting sql.DB for %s: %v", name, err)
		return
	}

	// Force close idle connections first so Close has less to wait on
	sqlDB.SetMaxIdleConns(0)
	sqlDB.SetConnMaxIdleTime(0)
	sqlDB.SetConnMaxLifetime(0)

	done := make(chan error, 1)
	go func() {
		done <- sqlDB.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			logrus.Errorf("[%s] Error closing connection: %v", name, err)
		} else {
			logrus.Debugf("[%s] Connection closed successfully.", name)
		}
	case <-time.After(1 * time.Second):
		logrus.Warnf("[%s] Connection close timed out after 1s, proceeding anyway", name)
	}
}
