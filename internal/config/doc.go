// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml, a local .env file and environment
// variables. Prefixed variables (STUDYAI_SERVER_PORT) are read alongside the
// bare names used by earlier deployments (GEMINI_API_KEY, GROQ_API_KEY,
// DATABASE_URL, REDIS_URL, SUPABASE_JWT_SECRET).
package config
