package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the Unsplash API root
	DefaultBaseURL = "https://api.unsplash.com"

	// DefaultOutputDir is where images land when no --output is given
	DefaultOutputDir = "./unsplash-images"

	// DefaultCount is the number of images requested when no --count is given
	DefaultCount = 5

	// DefaultSize is the size variant used when no --size is given
	DefaultSize = "regular"

	// CredentialsDirName is the per-user directory holding config.json
	CredentialsDirName = ".unsplash-downloader"

	// SettingsFileName is the per-user settings file inside CredentialsDirName
	SettingsFileName = "settings.yaml"
)

// Config holds all configuration options for the downloader
type Config struct {
	// Remote API settings
	API APIConfig `yaml:"api" json:"api"`

	// Download defaults
	Download DownloadConfig `yaml:"download" json:"download"`

	// Where credentials are stored
	Credentials CredentialsConfig `yaml:"credentials" json:"credentials"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds remote service settings
type APIConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// DownloadConfig holds defaults for the download command
type DownloadConfig struct {
	Count     int    `yaml:"count" json:"count"`
	Size      string `yaml:"size" json:"size"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	// Concurrency caps simultaneous downloads. Zero means one goroutine per photo.
	Concurrency int `yaml:"concurrency" json:"concurrency"`
}

// CredentialsConfig locates the credential file
type CredentialsConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   60 * time.Second,
			UserAgent: "unsplash-dl/1.0",
		},
		Download: DownloadConfig{
			Count:       DefaultCount,
			Size:        DefaultSize,
			OutputDir:   DefaultOutputDir,
			Concurrency: 0,
		},
		Credentials: CredentialsConfig{
			Dir: DefaultCredentialsDir(),
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
	}
}

// DefaultCredentialsDir returns $HOME/.unsplash-downloader, or a relative
// directory when the home directory cannot be determined.
func DefaultCredentialsDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return CredentialsDirName
	}
	return filepath.Join(home, CredentialsDirName)
}

// DefaultSettingsPath returns $HOME/.unsplash-downloader/settings.yaml
func DefaultSettingsPath() string {
	return filepath.Join(DefaultCredentialsDir(), SettingsFileName)
}

// FindSettingsFile returns the settings file Load would read for configPath,
// or "" when none exists
func FindSettingsFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	return (&Config{}).findConfigFile()
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("UNSPLASHDL_API_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("UNSPLASHDL_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid UNSPLASHDL_TIMEOUT %q: %w", timeout, err)
		}
		c.API.Timeout = d
	}
	if userAgent := os.Getenv("UNSPLASHDL_USER_AGENT"); userAgent != "" {
		c.API.UserAgent = userAgent
	}

	if outputDir := os.Getenv("UNSPLASHDL_OUTPUT_DIR"); outputDir != "" {
		c.Download.OutputDir = outputDir
	}
	if concurrency := os.Getenv("UNSPLASHDL_CONCURRENCY"); concurrency != "" {
		val, err := strconv.Atoi(concurrency)
		if err != nil {
			return fmt.Errorf("invalid UNSPLASHDL_CONCURRENCY %q: %w", concurrency, err)
		}
		c.Download.Concurrency = val
	}

	if dir := os.Getenv("UNSPLASHDL_CONFIG_DIR"); dir != "" {
		c.Credentials.Dir = dir
	}

	if logLevel := os.Getenv("UNSPLASHDL_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("UNSPLASHDL_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for a settings file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".unsplash-dl.yaml",
		".unsplash-dl.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations,
			filepath.Join(home, CredentialsDirName, SettingsFileName),
			filepath.Join(home, CredentialsDirName, "settings.yml"),
		)
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
// Count and size are not checked here; they pass through to the remote service.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API base URL is required"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid API base URL: %q", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("API timeout cannot be negative"))
	}

	if c.Download.OutputDir == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Download.Concurrency < 0 {
		errs = append(errs, errors.New("concurrency cannot be negative"))
	}

	if c.Credentials.Dir == "" {
		errs = append(errs, errors.New("credentials directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level: %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only keys present in the map are applied.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Download.OutputDir = outputDir
	}
	if count, ok := flags["count"].(int); ok {
		c.Download.Count = count
	}
	if size, ok := flags["size"].(string); ok {
		c.Download.Size = size
	}
	if concurrency, ok := flags["concurrency"].(int); ok {
		c.Download.Concurrency = concurrency
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if dir, ok := flags["config-dir"].(string); ok && dir != "" {
		c.Credentials.Dir = dir
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, CredentialsDirName, ".env"))
	}

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
