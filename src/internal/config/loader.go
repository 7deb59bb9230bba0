// Package config provides configuration loading and validation for the
// stagehand CLI tool.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// Loader handles loading and parsing configuration files from multiple formats.
type Loader struct {
	searchPaths []string
}

// NewLoader creates a new configuration loader with default search paths.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: []string{
			".",
			"~/.config/stagehand",
		},
	}
}

// Load loads configuration from the specified path or searches for default
// config files. Configuration is all-or-nothing: a missing file or a missing
// required value fails before any remote interaction is attempted.
func (l *Loader) Load(configPath string) (Config, error) {
	if configPath == "" {
		configPath = l.findDefaultConfig()
	}

	if configPath == "" {
		return Config{}, fmt.Errorf("no configuration file found (expected deploy.env, stagehand.toml or stagehand.json)")
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	ext := strings.ToLower(filepath.Ext(configPath))

	cfg, err := l.parseByExtension(content, ext)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	l.applyDefaults(&cfg)

	if err := l.validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

func (l *Loader) findDefaultConfig() string {
	candidates := []string{
		"deploy.env",
		".deploy.env",
		"stagehand.toml",
		"stagehand.jsonc",
		"stagehand.json",
	}

	for _, searchPath := range l.searchPaths {
		for _, candidate := range candidates {
			fullPath := filepath.Join(searchPath, candidate)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath
			}
		}
	}

	return ""
}

func (l *Loader) parseByExtension(content []byte, ext string) (Config, error) {
	var cfg Config

	switch ext {
	case ".env", "":
		values, err := godotenv.Parse(strings.NewReader(string(content)))
		if err != nil {
			return cfg, fmt.Errorf("invalid env file: %w", err)
		}

		return l.fromEnvValues(values)
	case ".json", ".jsonc":
		// Handle JSONC by stripping comments
		cleaned := l.stripJSONComments(string(content))
		if err := json.Unmarshal([]byte(cleaned), &cfg); err != nil {
			return cfg, fmt.Errorf("invalid JSON: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format: %s", ext)
	}

	return cfg, nil
}

func (l *Loader) fromEnvValues(values map[string]string) (Config, error) {
	cfg := Config{
		Host:       values[KeyHost],
		RemotePath: values[KeyRemotePath],
		ContentDir: values[KeyContentDir],
		BackupsDir: values[KeyBackupsDir],
		SSHBin:     values[KeySSHBin],
		RsyncBin:   values[KeyRsyncBin],
	}

	if raw, ok := values[KeyMaxBackups]; ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s must be a number, got %q", KeyMaxBackups, raw)
		}

		cfg.MaxBackups = n
	}

	if raw, ok := values[KeyConnectTimeout]; ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s must be a number, got %q", KeyConnectTimeout, raw)
		}

		cfg.ConnectTimeoutSecs = n
	}

	return cfg, nil
}

func (l *Loader) stripJSONComments(content string) string {
	result := gjson.Parse(content)
	if !result.IsObject() {
		return content
	}

	var cleaned map[string]interface{}
	if err := json.Unmarshal([]byte(content), &cleaned); err != nil {
		// If standard JSON parsing fails, try manual comment removal
		lines := strings.Split(content, "\n")

		var cleanedLines []string

		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "//") {
				continue
			}

			if idx := strings.Index(line, "//"); idx != -1 {
				line = line[:idx]
			}

			cleanedLines = append(cleanedLines, line)
		}

		return strings.Join(cleanedLines, "\n")
	}

	cleanedJSON, _ := json.Marshal(cleaned)

	return string(cleanedJSON)
}

func (l *Loader) applyDefaults(cfg *Config) {
	if cfg.ContentDir == "" {
		cfg.ContentDir = DefaultContentDir
	}

	if cfg.BackupsDir == "" {
		cfg.BackupsDir = DefaultBackupsDir
	}

	if cfg.SSHBin == "" {
		cfg.SSHBin = DefaultSSHBin
	}

	if cfg.RsyncBin == "" {
		cfg.RsyncBin = DefaultRsyncBin
	}

	if cfg.ConnectTimeoutSecs <= 0 {
		cfg.ConnectTimeoutSecs = DefaultConnectTimeout
	}
}

func (l *Loader) validate(cfg Config) error {
	if strings.TrimSpace(cfg.Host) == "" {
		return fmt.Errorf("missing required value %s (remote host)", KeyHost)
	}

	if strings.TrimSpace(cfg.RemotePath) == "" {
		return fmt.Errorf("missing required value %s (remote base path)", KeyRemotePath)
	}

	if cfg.MaxBackups < 0 {
		return fmt.Errorf("%s must be non-negative, got %d", KeyMaxBackups, cfg.MaxBackups)
	}

	return nil
}
