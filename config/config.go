// Package config loads settings for the server and the recon job.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"commandcenter-backend/service"
	"commandcenter-backend/storage"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const maxConfigFileSize = 1024 * 1024

// Config holds the complete configuration
type Config struct {
	Server  ServerConfig          `koanf:"server"`
	Log     LogConfig             `koanf:"log"`
	Storage storage.StorageConfig `koanf:"storage"`
	Recon   service.ReconConfig   `koanf:"recon"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string `koanf:"port"`
	GinMode        string `koanf:"gin_mode"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultReconTargets are monitored when no target list is configured at all
var DefaultReconTargets = []string{"Management Services Holdings LLC", "MSH Tennessee"}

// envKeys maps recognised environment variables to config keys
var envKeys = map[string]string{
	"PORT":                  "server.port",
	"GIN_MODE":              "server.gin_mode",
	"MAX_UPLOAD_BYTES":      "server.max_upload_bytes",
	"LOG_LEVEL":             "log.level",
	"LOG_FORMAT":            "log.format",
	"STORAGE_TYPE":          "storage.type",
	"STORAGE_LOCAL_PATH":    "storage.local_path",
	"AWS_S3_BUCKET":         "storage.s3_bucket",
	"AWS_REGION":            "storage.s3_region",
	"AWS_S3_ENDPOINT":       "storage.s3_endpoint",
	"AWS_ACCESS_KEY_ID":     "storage.aws_access_key",
	"AWS_SECRET_ACCESS_KEY": "storage.aws_secret_key",
	"RECON_TARGETS":         "recon.targets",
	"RECON_SEARCH_TERMS":    "recon.search_terms",
	"SERPER_API_KEY":        "recon.serper_api_key",
	"RESEND_API_KEY":        "recon.resend_api_key",
	"RECON_FROM_EMAIL":      "recon.from_email",
	"RECON_RECIPIENT_EMAIL": "recon.recipient_email",
	"RECON_BRAND":           "recon.brand",
	"RECON_REQUEST_TIMEOUT": "recon.request_timeout",
	"RECON_CONCURRENCY":     "recon.concurrency",
	"RECON_SEARCH_URL":      "recon.search_url",
	"RECON_EMAIL_URL":       "recon.email_url",
}

// Load reads configuration. Precedence, highest first:
//  1. Environment variables (including those from .env)
//  2. YAML file at path, when path is non-empty
//  3. Defaults
func Load(path string) (*Config, error) {
	// .env is optional; cmd/ binaries may run from their own directory
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../../.env")
	}

	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Env values arrive as single strings
	cfg.Recon.Targets = splitList(cfg.Recon.Targets)
	cfg.Recon.SearchTerms = splitList(cfg.Recon.SearchTerms)
	if !k.Exists("recon.targets") {
		cfg.Recon.Targets = append([]string(nil), DefaultReconTargets...)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// splitList flattens comma-separated entries and drops blanks
func splitList(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.GinMode == "" {
		cfg.Server.GinMode = "debug"
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 10 * 1024 * 1024
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = storage.StorageTypeMemory
	}
	if cfg.Storage.Type == storage.StorageTypeLocal && cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./storage/files"
	}
	if cfg.Storage.Type == storage.StorageTypeS3 && cfg.Storage.S3Region == "" {
		cfg.Storage.S3Region = "us-east-1"
	}
	cfg.Recon = cfg.Recon.WithDefaults()
}

// Validate checks settings the server cannot start without. Recon
// credentials are checked by the job itself.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Type {
	case storage.StorageTypeMemory, storage.StorageTypeLocal:
	case storage.StorageTypeS3:
		if c.Storage.S3Bucket == "" {
			errs = append(errs, errors.New("AWS_S3_BUCKET is required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage type %q", c.Storage.Type))
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("unknown gin mode %q", c.Server.GinMode))
	}

	if c.Server.MaxUploadBytes < 0 {
		errs = append(errs, errors.New("max upload bytes must not be negative"))
	}
	if c.Recon.Concurrency < 1 {
		errs = append(errs, errors.New("recon concurrency must be at least 1"))
	}

	return errors.Join(errs...)
}
