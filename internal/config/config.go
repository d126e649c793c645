// Package config provides application configuration management with support
// for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Server     ServerConfig
	Storage    StorageConfig
	Storefront StorefrontConfig
	I18n       I18nConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	PublicURL    string        // Base URL used when building attachment URLs
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// StorageConfig holds local data storage configuration.
// The badger database lives in {DataPath}/db, attachment blobs in {DataPath}/media.
type StorageConfig struct {
	DataPath string
}

// DBPath returns the badger database directory.
func (s StorageConfig) DBPath() string {
	return filepath.Join(s.DataPath, "db")
}

// MediaPath returns the attachment blob directory.
func (s StorageConfig) MediaPath() string {
	return filepath.Join(s.DataPath, "media")
}

// StorefrontConfig holds configuration for the e-commerce platform API that
// supplies product image lists.
type StorefrontConfig struct {
	BaseURL  string        // Platform API base URL
	StoreID  string        // Store identifier on the platform
	Token    string        // API token
	Timeout  time.Duration // Per-request timeout (default: 10s)
	CacheTTL time.Duration // Product image list cache TTL (default: 30s)
}

// I18nConfig holds localization configuration.
type I18nConfig struct {
	DefaultLanguage string // Base language of stored content (default: en)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for local data storage")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	publicURL := flag.String("public-url", "", "Public base URL for attachment links")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	storefrontURL := flag.String("storefront-url", "", "Storefront platform API base URL")
	storefrontStore := flag.String("storefront-store", "", "Storefront store ID")
	storefrontToken := flag.String("storefront-token", "", "Storefront API token")
	storefrontTimeout := flag.String("storefront-timeout", "", "Storefront request timeout (default: 10s)")
	storefrontCacheTTL := flag.String("storefront-cache-ttl", "", "Product image cache TTL (default: 30s)")
	defaultLanguage := flag.String("default-language", "", "Base language of stored content (default: en)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:      getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			PublicURL: getConfigValue(*publicURL, "SERVER_PUBLIC_URL", "http://localhost:8080"),
		},
		Storage: StorageConfig{
			DataPath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Storefront: StorefrontConfig{
			BaseURL: getConfigValue(*storefrontURL, "STOREFRONT_URL", ""),
			StoreID: getConfigValue(*storefrontStore, "STOREFRONT_STORE_ID", ""),
			Token:   getConfigValue(*storefrontToken, "STOREFRONT_TOKEN", ""),
		},
		I18n: I18nConfig{
			DefaultLanguage: getConfigValue(*defaultLanguage, "DEFAULT_LANGUAGE", "en"),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}
	if cfg.Storefront.Timeout, err = parseDurationValue(*storefrontTimeout, "STOREFRONT_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.Storefront.CacheTTL, err = parseDurationValue(*storefrontCacheTTL, "STOREFRONT_CACHE_TTL", "30s"); err != nil {
		return nil, err
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.I18n.DefaultLanguage == "" {
		return errors.New("default language cannot be empty")
	}

	// Storefront config can be empty - the platform image source is then
	// unavailable, but upload and URL sources still work.

	return nil
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ~/shoptag/data when unset.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "shoptag", "data")

	expanded, err := expandPath(c.Storage.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Storage.DataPath = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// parseDurationValue resolves a duration from flag, env var, or default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(strings.ReplaceAll(envKey, "_", " ")), raw, err)
	}
	return d, nil
}

// loadEnvFile reads KEY=VALUE pairs from a file into the process environment.
// Existing environment variables are not overwritten.
func loadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
