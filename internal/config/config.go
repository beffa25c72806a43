package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"        validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Task      TaskConfig      `mapstructure:"task"       validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CORSAllowedOrigins lists origins allowed to call the API from a browser
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	// MaxUploadMB caps request bodies, including multipart document uploads
	MaxUploadMB int `mapstructure:"max_upload_mb" validate:"required,gt=0,lte=100"`
}

// LLMConfig contains the upstream provider credentials and model identifiers.
// Missing credentials are not a validation error: the matching provider
// reports itself unavailable at call time instead.
type LLMConfig struct {
	// GeminiAPIKeys is a comma-separated list of robust-provider keys
	GeminiAPIKeys string `mapstructure:"gemini_api_keys"`
	GroqAPIKey    string `mapstructure:"groq_api_key"`
	GroqBaseURL   string `mapstructure:"groq_base_url"   validate:"required,url"`

	RobustModel    string `mapstructure:"robust_model"    validate:"required"`
	StableModel    string `mapstructure:"stable_model"    validate:"required"`
	VisionModel    string `mapstructure:"vision_model"    validate:"required"`
	CodeModel      string `mapstructure:"code_model"      validate:"required"`
	ReasoningModel string `mapstructure:"reasoning_model" validate:"required"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL disables history persistence.
type DatabaseConfig struct {
	URL         string `mapstructure:"url"          validate:"omitempty,url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains the secret used to verify bearer tokens issued by the
// hosted authentication provider. An empty secret disables authentication.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
}

// RedisConfig points at the Redis instance backing the rate limiter.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// RateLimitConfig controls per-client request limits. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"gte=0"`
}

// TaskConfig sizes the background worker pool that records history.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
}
