// Package config loads the YAML configuration and materializes defaults on
// first run.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

// FileLoader loads YAML configuration from ~/.iotguard/config.yaml
// (overridable via IOTGUARD_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path selects the default
// location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is replaced with the
// written defaults; a present file is hydrated so omitted settings keep
// their defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, &domain.FormatError{Path: path, Err: err}
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("IOTGUARD_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".iotguard", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	dataDir := filepath.Join(userHomeDir(), ".iotguard")
	return domain.Config{
		ConfigFormatVersion: "1",
		Advisor: domain.AdvisorSettings{
			TimeoutSeconds: 10,
			MaxWorkers:     4,
			HistoryLimit:   10,
			DefaultRule:    string(domain.RuleNone),
		},
		Analyzer: domain.AnalyzerSettings{
			Mode:       domain.AnalyzerModeGemini,
			Model:      "gemini-1.5-pro",
			Endpoint:   "https://generativelanguage.googleapis.com/v1beta",
			AuthEnvVar: "GOOGLE_API_KEY",
			MaxRetries: 3,
		},
		Matcher: domain.MatcherSettings{
			Threshold:   0.8,
			CatalogFile: filepath.Join(dataDir, "catalog.json"),
		},
		Storage: domain.StorageSettings{
			UsersDB:     filepath.Join(dataDir, "users.db"),
			HistoryFile: filepath.Join(dataDir, "history.json"),
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	defaults := defaultConfig()
	if cfg.Advisor.TimeoutSeconds == 0 {
		cfg.Advisor.TimeoutSeconds = defaults.Advisor.TimeoutSeconds
	}
	if cfg.Advisor.MaxWorkers == 0 {
		cfg.Advisor.MaxWorkers = defaults.Advisor.MaxWorkers
	}
	if cfg.Advisor.HistoryLimit == 0 {
		cfg.Advisor.HistoryLimit = defaults.Advisor.HistoryLimit
	}
	if cfg.Advisor.DefaultRule == "" {
		cfg.Advisor.DefaultRule = defaults.Advisor.DefaultRule
	}
	if cfg.Analyzer.Mode == "" {
		cfg.Analyzer.Mode = defaults.Analyzer.Mode
	}
	if cfg.Analyzer.Model == "" {
		cfg.Analyzer.Model = defaults.Analyzer.Model
	}
	if cfg.Analyzer.Endpoint == "" {
		cfg.Analyzer.Endpoint = defaults.Analyzer.Endpoint
	}
	if cfg.Analyzer.AuthEnvVar == "" {
		cfg.Analyzer.AuthEnvVar = defaults.Analyzer.AuthEnvVar
	}
	if cfg.Analyzer.MaxRetries == 0 {
		cfg.Analyzer.MaxRetries = defaults.Analyzer.MaxRetries
	}
	if cfg.Matcher.Threshold == 0 {
		cfg.Matcher.Threshold = defaults.Matcher.Threshold
	}
	if cfg.Matcher.CatalogFile == "" {
		cfg.Matcher.CatalogFile = defaults.Matcher.CatalogFile
	}
	if cfg.Storage.UsersDB == "" {
		cfg.Storage.UsersDB = defaults.Storage.UsersDB
	}
	if cfg.Storage.HistoryFile == "" {
		cfg.Storage.HistoryFile = defaults.Storage.HistoryFile
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
