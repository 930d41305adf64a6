package types

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	IsMaster() bool
	GetAuthConfig() AuthConfig
	GetCORSConfig() CORSConfig
	GetPerformanceConfig() PerformanceConfig
	GetLogConfig() LogConfig
	GetDatabaseConfig() DatabaseConfig
	GetEffectiveServerConfig() ServerConfig
	GetRedisDSN() string
	Validate() error
	DisplayServerConfig()
}

// SystemSettings defines all runtime-tunable settings stored in the database.
type SystemSettings struct {
	DefaultLanguage      string `json:"default_language" default:"en" name:"config.default_language" category:"config.category.basic" desc:"config.default_language_desc" validate:"required"`
	ResolveCacheTTL      int    `json:"resolve_cache_ttl_minutes" default:"30" name:"config.resolve_cache_ttl" category:"config.category.cache" desc:"config.resolve_cache_ttl_desc" validate:"required,min=0"`
	AuditRetentionDays   int    `json:"audit_retention_days" default:"90" name:"config.audit_retention_days" category:"config.category.audit" desc:"config.audit_retention_days_desc" validate:"required,min=0"`
	SearchResultLimit    int    `json:"search_result_limit" default:"1000" name:"config.search_result_limit" category:"config.category.search" desc:"config.search_result_limit_desc" validate:"required,min=1"`
	ExportCompressionMin int    `json:"export_compression_min_bytes" default:"1024" name:"config.export_compression_min" category:"config.category.export" desc:"config.export_compression_min_desc" validate:"required,min=0"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port                    int    `json:"port"`
	Host                    string `json:"host"`
	IsMaster                bool   `json:"is_master"`
	ReadTimeout             int    `json:"read_timeout"`
	WriteTimeout            int    `json:"write_timeout"`
	IdleTimeout             int    `json:"idle_timeout"`
	GracefulShutdownTimeout int    `json:"graceful_shutdown_timeout"`
}

// AuthConfig represents authentication configuration.
// AdminKey grants the elevated role required for global writes and seeding.
type AuthConfig struct {
	AdminKey string `json:"admin_key"`
}

// CORSConfig represents CORS configuration
type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
}

// PerformanceConfig represents performance configuration
type PerformanceConfig struct {
	MaxConcurrentRequests int `json:"max_concurrent_requests"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	EnableFile bool   `json:"enable_file"`
	FilePath   string `json:"file_path"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	DSN string `json:"dsn"`
}
