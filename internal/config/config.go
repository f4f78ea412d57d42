package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	ModeServer = "server"
	ModeWorker = "worker"

	BackendGemini = "gemini"
	BackendAgent  = "agent"
)

// Config holds all configuration for the application
type Config struct {
	Mode  string
	Port  string
	Debug bool

	// Gemini
	GeminiAPIKey       string
	GeminiModel        string
	GeneratorBackend   string
	PipelineConcurrent bool

	// HTTP shell
	MaxUploadMB    int
	AllowedOrigins []string

	// Worker
	DBURL       string
	RabbitMQURL string
	WorkerCount int
	R2          R2Config
}

// R2Config is the Cloudflare R2 bucket the worker reads uploaded resumes from.
type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Mode:  strings.ToLower(getEnv("MODE", ModeServer)),
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeneratorBackend:   strings.ToLower(getEnv("GENERATOR_BACKEND", BackendGemini)),
		PipelineConcurrent: getEnvBool("PIPELINE_CONCURRENT", false),

		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 10),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),

		DBURL:       getEnv("DB_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		WorkerCount: getEnvInt("WORKER_COUNT", 3),
		R2: R2Config{
			AccountID: getEnv("R2_ACCCOUNT_ID", ""),
			Bucket:    getEnv("R2_BUCKET", ""),
			AccessKey: getEnv("R2_ACCESS_KEY", ""),
			SecretKey: getEnv("R2_SECRET_KEY", ""),
		},
	}
}

// Validate checks if required configuration is present for the selected mode.
// The Gemini credential is checked by the generator constructors so the
// missing-credential error keeps its own identity.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeServer, ModeWorker:
	default:
		return &ConfigError{Field: "MODE", Message: "MODE must be \"server\" or \"worker\""}
	}

	switch c.GeneratorBackend {
	case BackendGemini, BackendAgent:
	default:
		return &ConfigError{Field: "GENERATOR_BACKEND", Message: "GENERATOR_BACKEND must be \"gemini\" or \"agent\""}
	}

	if c.MaxUploadMB <= 0 {
		return &ConfigError{Field: "MAX_UPLOAD_MB", Message: "MAX_UPLOAD_MB must be positive"}
	}

	if c.Mode != ModeWorker {
		return nil
	}

	required := []struct{ field, value string }{
		{"DB_URL", c.DBURL},
		{"RABBITMQ_URL", c.RabbitMQURL},
		{"R2_ACCCOUNT_ID", c.R2.AccountID},
		{"R2_BUCKET", c.R2.Bucket},
		{"R2_ACCESS_KEY", c.R2.AccessKey},
		{"R2_SECRET_KEY", c.R2.SecretKey},
	}
	for _, r := range required {
		if r.value == "" {
			return &ConfigError{Field: r.field, Message: "empty " + r.field + " in environment"}
		}
	}
	if c.WorkerCount <= 0 {
		return &ConfigError{Field: "WORKER_COUNT", Message: "WORKER_COUNT must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
