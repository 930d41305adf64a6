// Package config loads environment configuration and manages runtime system
// settings persisted in the database.
package config

import (
	"fmt"

	"transhub/internal/types"
	"transhub/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Manager is the environment-backed implementation of types.ConfigManager.
// Values are read once at startup; runtime-tunable knobs live in
// SystemSettingsManager instead.
type Manager struct {
	server      types.ServerConfig
	auth        types.AuthConfig
	cors        types.CORSConfig
	performance types.PerformanceConfig
	log         types.LogConfig
	database    types.DatabaseConfig
	redisDSN    string
}

// NewManager creates a configuration manager from the process environment,
// loading a .env file first when present.
func NewManager() (types.ConfigManager, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	m := &Manager{
		server: types.ServerConfig{
			Port:                    utils.ParseInteger(utils.GetEnvOrDefault("PORT", "3001"), 3001),
			Host:                    utils.GetEnvOrDefault("HOST", "0.0.0.0"),
			IsMaster:                utils.ParseBoolean(utils.GetEnvOrDefault("IS_SLAVE", "false"), false) == false,
			ReadTimeout:             utils.ParseInteger(utils.GetEnvOrDefault("SERVER_READ_TIMEOUT", "60"), 60),
			WriteTimeout:            utils.ParseInteger(utils.GetEnvOrDefault("SERVER_WRITE_TIMEOUT", "60"), 60),
			IdleTimeout:             utils.ParseInteger(utils.GetEnvOrDefault("SERVER_IDLE_TIMEOUT", "120"), 120),
			GracefulShutdownTimeout: utils.ParseInteger(utils.GetEnvOrDefault("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT", "10"), 10),
		},
		auth: types.AuthConfig{
			AdminKey: utils.GetEnvOrDefault("ADMIN_KEY", ""),
		},
		cors: types.CORSConfig{
			Enabled:          utils.ParseBoolean(utils.GetEnvOrDefault("ENABLE_CORS", "true"), true),
			AllowedOrigins:   utils.ParseArray(utils.GetEnvOrDefault("ALLOWED_ORIGINS", "*")),
			AllowedMethods:   utils.ParseArray(utils.GetEnvOrDefault("ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")),
			AllowedHeaders:   utils.ParseArray(utils.GetEnvOrDefault("ALLOWED_HEADERS", "*")),
			AllowCredentials: utils.ParseBoolean(utils.GetEnvOrDefault("ALLOW_CREDENTIALS", "false"), false),
		},
		performance: types.PerformanceConfig{
			MaxConcurrentRequests: utils.ParseInteger(utils.GetEnvOrDefault("MAX_CONCURRENT_REQUESTS", "100"), 100),
		},
		log: types.LogConfig{
			Level:      utils.GetEnvOrDefault("LOG_LEVEL", "info"),
			Format:     utils.GetEnvOrDefault("LOG_FORMAT", "text"),
			EnableFile: utils.ParseBoolean(utils.GetEnvOrDefault("LOG_ENABLE_FILE", "false"), false),
			FilePath:   utils.GetEnvOrDefault("LOG_FILE_PATH", "./data/logs/app.log"),
		},
		database: types.DatabaseConfig{
			DSN: utils.GetEnvOrDefault("DATABASE_DSN", "./data/transhub.db"),
		},
		redisDSN: utils.GetEnvOrDefault("REDIS_DSN", ""),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// IsMaster reports whether this instance performs migrations and seeding.
func (m *Manager) IsMaster() bool { return m.server.IsMaster }

// GetAuthConfig returns authentication configuration.
func (m *Manager) GetAuthConfig() types.AuthConfig { return m.auth }

// GetCORSConfig returns CORS configuration.
func (m *Manager) GetCORSConfig() types.CORSConfig { return m.cors }

// GetPerformanceConfig returns performance configuration.
func (m *Manager) GetPerformanceConfig() types.PerformanceConfig { return m.performance }

// GetLogConfig returns logging configuration.
func (m *Manager) GetLogConfig() types.LogConfig { return m.log }

// GetDatabaseConfig returns database configuration.
func (m *Manager) GetDatabaseConfig() types.DatabaseConfig { return m.database }

// GetEffectiveServerConfig returns the server configuration.
func (m *Manager) GetEffectiveServerConfig() types.ServerConfig { return m.server }

// GetRedisDSN returns the Redis DSN, empty when the memory store is used.
func (m *Manager) GetRedisDSN() string { return m.redisDSN }

// Validate checks configuration invariants at startup.
func (m *Manager) Validate() error {
	if m.auth.AdminKey == "" {
		return fmt.Errorf("ADMIN_KEY is required")
	}
	if len(m.auth.AdminKey) < 16 {
		return fmt.Errorf("ADMIN_KEY must be at least 16 characters")
	}
	if m.server.Port < 1 || m.server.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", m.server.Port)
	}
	return nil
}

// DisplayServerConfig logs the effective startup configuration.
func (m *Manager) DisplayServerConfig() {
	logrus.Infof("Server: %s:%d (master: %v)", m.server.Host, m.server.Port, m.server.IsMaster)
	logrus.Infof("Database DSN: %s", m.database.DSN)
	if m.redisDSN != "" {
		logrus.Info("Cache: redis")
	} else {
		logrus.Info("Cache: memory")
	}
}
