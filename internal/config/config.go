package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/casemind/legal-team-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`

	// Model credential. Deliberately not required: a missing key keeps the
	// page and the health endpoint alive and blocks only ingestion and
	// analysis calls.
	ModelAPIKey string `env:"GEMINI_API_KEY"`

	// External service configurations
	LLMConnectorCfg    LLMConnectorConfig    `envPrefix:"LLM_"`
	EmbedConnectorCfg  EmbedConnectorConfig  `envPrefix:"EMBED_"`
	SearchConnectorCfg SearchConnectorConfig `envPrefix:"SEARCH_"`

	// Knowledge base configuration
	KnowledgeBaseCfg KnowledgeBaseConfig `envPrefix:"KB_"`

	// Chunking parameter bounds
	ChunkingCfg ChunkingConfig `envPrefix:"CHUNK_"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Agent role definitions and predefined queries (loaded from JSON file,
	// falling back to built-in defaults)
	Agents AgentsConfig

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Model string `env:"MODEL" envDefault:"gemini-2.0-flash-exp"`
}

type EmbedConnectorConfig struct {
	HTTPClientConfig
	Model string `env:"MODEL" envDefault:"text-embedding-004"`
}

type SearchConnectorConfig struct {
	HTTPClientConfig
	// Number of flattened results handed to an agent prompt.
	MaxResults int `env:"MAX_RESULTS" envDefault:"5"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// KnowledgeBaseConfig addresses the persistent vector collection.
type KnowledgeBaseConfig struct {
	Collection string `env:"COLLECTION" envDefault:"law"`
	TopK       int    `env:"TOP_K" envDefault:"5"`
}

// ChunkingConfig bounds the user-supplied chunk size and overlap. The
// overlap/size relation itself is intentionally unconstrained.
type ChunkingConfig struct {
	SizeMin        int `env:"SIZE_MIN" envDefault:"1"`
	SizeMax        int `env:"SIZE_MAX" envDefault:"5000"`
	SizeDefault    int `env:"SIZE_DEFAULT" envDefault:"1000"`
	OverlapMin     int `env:"OVERLAP_MIN" envDefault:"1"`
	OverlapMax     int `env:"OVERLAP_MAX" envDefault:"1000"`
	OverlapDefault int `env:"OVERLAP_DEFAULT" envDefault:"200"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"10485760"`  // 10 MiB
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadAgentsConfig(cfg); err != nil {
		return nil, fmt.Errorf("load agents config: %w", err)
	}

	return cfg, nil
}

// CredentialPresent reports whether the model API key is configured.
func (c *Config) CredentialPresent() bool {
	return c.ModelAPIKey != ""
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	cc := cfg.ChunkingCfg
	if cc.SizeMin < 1 || cc.SizeDefault < cc.SizeMin || cc.SizeDefault > cc.SizeMax {
		errors = append(errors, fmt.Sprintf("chunk size bounds are inconsistent: min=%d default=%d max=%d", cc.SizeMin, cc.SizeDefault, cc.SizeMax))
	}

	if cc.OverlapMin < 1 || cc.OverlapDefault < cc.OverlapMin || cc.OverlapDefault > cc.OverlapMax {
		errors = append(errors, fmt.Sprintf("overlap bounds are inconsistent: min=%d default=%d max=%d", cc.OverlapMin, cc.OverlapDefault, cc.OverlapMax))
	}

	if cfg.KnowledgeBaseCfg.TopK < 1 {
		errors = append(errors, fmt.Sprintf("KB_TOP_K must be positive, got %d", cfg.KnowledgeBaseCfg.TopK))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
