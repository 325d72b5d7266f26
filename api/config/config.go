package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"xrplbalance/api/types"
)

const DefaultXRPLDataAPIURL = "https://data.ripple.com"

type fileConfig struct {
	Port            string        `yaml:"port"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	XRPL            struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"xrpl"`
	CORS struct {
		AllowOrigins string `yaml:"allow_origins"`
	} `yaml:"cors"`
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE and finally the environment.
func Load() (*types.Config, error) {
	cfg := &types.Config{
		Port:             "8000",
		XRPLDataAPIURL:   DefaultXRPLDataAPIURL,
		XRPLUserAgent:    "xrpl-balance-proxy/1.0",
		CORSAllowOrigins: "*",
		LogLevel:         "info",
		ShutdownTimeout:  10 * time.Second,
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(cfg.XRPLDataAPIURL, "http") {
		return nil, fmt.Errorf("invalid XRPL data API URL %q", cfg.XRPLDataAPIURL)
	}

	return cfg, nil
}

func loadFile(cfg *types.Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = fc.ShutdownTimeout
	}
	if fc.XRPL.BaseURL != "" {
		cfg.XRPLDataAPIURL = fc.XRPL.BaseURL
	}
	if fc.XRPL.Timeout > 0 {
		cfg.XRPLTimeout = fc.XRPL.Timeout
	}
	if fc.XRPL.UserAgent != "" {
		cfg.XRPLUserAgent = fc.XRPL.UserAgent
	}
	if fc.CORS.AllowOrigins != "" {
		cfg.CORSAllowOrigins = fc.CORS.AllowOrigins
	}

	return nil
}

func loadEnv(cfg *types.Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.XRPLDataAPIURL = getEnv("XRPL_DATA_API_URL", cfg.XRPLDataAPIURL)
	cfg.XRPLUserAgent = getEnv("XRPL_USER_AGENT", cfg.XRPLUserAgent)
	cfg.CORSAllowOrigins = getEnv("CORS_ALLOW_ORIGINS", cfg.CORSAllowOrigins)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.XRPLTimeout, err = getDuration("XRPL_TIMEOUT", cfg.XRPLTimeout); err != nil {
		return err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return err
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}

	return d, nil
}
