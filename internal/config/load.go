package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "STUDYAI"

// legacyEnv maps configuration keys to the bare variable names used by
// existing deployments. The prefixed name always wins when both are set.
var legacyEnv = map[string]string{
	"llm.gemini_api_keys": "GEMINI_API_KEY",
	"llm.groq_api_key":    "GROQ_API_KEY",
	"database.url":        "DATABASE_URL",
	"redis.url":           "REDIS_URL",
	"auth.jwt_secret":     "SUPABASE_JWT_SECRET",
	"server.port":         "PORT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 10)

	v.SetDefault("llm.gemini_api_keys", "")
	v.SetDefault("llm.groq_api_key", "")
	v.SetDefault("llm.groq_base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.robust_model", "gemini-2.0-flash")
	v.SetDefault("llm.stable_model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.vision_model", "llama-3.2-11b-vision-preview")
	v.SetDefault("llm.code_model", "qwen-2.5-coder-32b")
	v.SetDefault("llm.reasoning_model", "deepseek-r1-distill-llama-70b")

	v.SetDefault("database.url", "")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("rate_limit.requests_per_minute", 30)

	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.worker_count", 2)
}

// Load configuration from environment variables and optionally config files.
// A local .env file is loaded into the process environment first, without
// overriding variables that are already set. Environment variables take
// precedence over values from config.yaml.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", legacy, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
