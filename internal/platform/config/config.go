// Package config loads application configuration from an optional YAML file
// and environment variables. All variables use the QUIZ_ prefix and override
// values from the file named by QUIZ_CONFIG_FILE.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Run modes.
const (
	ModeFlat      = "flat"
	ModeDirectory = "directory"
)

// Config holds all application configuration.
type Config struct {
	Mode      string          `yaml:"mode"`
	Flat      FlatConfig      `yaml:"flat"`
	Directory DirectoryConfig `yaml:"directory"`
	Dedupe    DedupeConfig    `yaml:"dedupe"`
	Review    ReviewConfig    `yaml:"review"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

// FlatConfig holds flat-mode paths: one nested input file in, a cleaned
// combined file and per-category files out.
type FlatConfig struct {
	InputFile   string `yaml:"input_file"`
	CleanedFile string `yaml:"cleaned_file"`
	OutputDir   string `yaml:"output_dir"`
}

// DirectoryConfig holds directory-scan mode paths.
type DirectoryConfig struct {
	SourceDir    string `yaml:"source_dir"`
	CombinedFile string `yaml:"combined_file"` // file name inside SourceDir
}

// DedupeConfig holds deduplication settings.
type DedupeConfig struct {
	NFCKeys bool `yaml:"nfc_keys"`
}

// ReviewConfig holds review workbook settings. An empty path disables it.
type ReviewConfig struct {
	Path string `yaml:"path"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL disables
// publishing to the database.
type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// CacheConfig holds Redis connection settings. An empty URL disables report
// publishing.
type CacheConfig struct {
	URL    string `yaml:"url"`
	Prefix string `yaml:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Mode: ModeFlat,
		Flat: FlatConfig{
			InputFile:   "questions.json",
			CleanedFile: "questions_cleaned.json",
			OutputDir:   "category_files",
		},
		Directory: DirectoryConfig{
			SourceDir:    "category_files",
			CombinedFile: "combined_deduplicated_questions.json",
		},
		Database: DatabaseConfig{
			MaxConns: 4,
			MinConns: 1,
		},
		Cache: CacheConfig{
			Prefix: "quizbank",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the optional QUIZ_CONFIG_FILE and then applies QUIZ_
// environment overrides.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("QUIZ_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Mode = envStr("QUIZ_MODE", cfg.Mode)
	cfg.Flat.InputFile = envStr("QUIZ_INPUT_FILE", cfg.Flat.InputFile)
	cfg.Flat.CleanedFile = envStr("QUIZ_CLEANED_FILE", cfg.Flat.CleanedFile)
	cfg.Flat.OutputDir = envStr("QUIZ_OUTPUT_DIR", cfg.Flat.OutputDir)
	cfg.Directory.SourceDir = envStr("QUIZ_SOURCE_DIR", cfg.Directory.SourceDir)
	cfg.Directory.CombinedFile = envStr("QUIZ_COMBINED_FILE", cfg.Directory.CombinedFile)
	cfg.Dedupe.NFCKeys = envBool("QUIZ_NFC_KEYS", cfg.Dedupe.NFCKeys)
	cfg.Review.Path = envStr("QUIZ_REVIEW_XLSX", cfg.Review.Path)
	cfg.Database.URL = envStr("QUIZ_DATABASE_URL", cfg.Database.URL)
	cfg.Database.MaxConns = envInt("QUIZ_DATABASE_MAX_CONNS", cfg.Database.MaxConns)
	cfg.Database.MinConns = envInt("QUIZ_DATABASE_MIN_CONNS", cfg.Database.MinConns)
	cfg.Cache.URL = envStr("QUIZ_CACHE_URL", cfg.Cache.URL)
	cfg.Cache.Prefix = envStr("QUIZ_CACHE_PREFIX", cfg.Cache.Prefix)
	cfg.Log.Level = envStr("QUIZ_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envStr("QUIZ_LOG_FORMAT", cfg.Log.Format)

	return cfg, nil
}

// Validate checks that the mode is known and its paths are set.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeFlat:
		if c.Flat.InputFile == "" || c.Flat.CleanedFile == "" || c.Flat.OutputDir == "" {
			return fmt.Errorf("flat mode requires input file, cleaned file and output directory")
		}
	case ModeDirectory:
		if c.Directory.SourceDir == "" || c.Directory.CombinedFile == "" {
			return fmt.Errorf("directory mode requires source directory and combined file")
		}
		if strings.ContainsAny(c.Directory.CombinedFile, `/\`) {
			return fmt.Errorf("QUIZ_COMBINED_FILE must be a file name, got %q", c.Directory.CombinedFile)
		}
	default:
		return fmt.Errorf("QUIZ_MODE must be '%s' or '%s', got %q", ModeFlat, ModeDirectory, c.Mode)
	}

	if c.Database.URL != "" && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("QUIZ_DATABASE_MIN_CONNS (%d) exceeds QUIZ_DATABASE_MAX_CONNS (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
