package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	stateDir       = ".promptatlas"
	configFileName = "config.yaml"
)

type Config struct {
	WorkspacePath string    `yaml:"-"`
	CataloguePath string    `yaml:"catalogue_path"`
	DBPath        string    `yaml:"db_path"`
	ExportDir     string    `yaml:"export_dir"`
	TemplatesDir  string    `yaml:"templates_dir"`
	NotesDir      string    `yaml:"notes_dir"`
	Log           LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// New builds the configuration for a workspace with precedence
// defaults -> <workspace>/.promptatlas/config.yaml -> environment.
func New(workspacePath string) (Config, error) {
	if strings.TrimSpace(workspacePath) == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	cfg := defaults(workspacePath)
	if err := cfg.loadFile(filepath.Join(workspacePath, stateDir, configFileName)); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	cfg.resolvePaths()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults(workspacePath string) Config {
	return Config{
		WorkspacePath: workspacePath,
		CataloguePath: filepath.Join("data", "techniques.json"),
		DBPath:        filepath.Join(stateDir, "promptatlas.db"),
		ExportDir:     filepath.Join(stateDir, "exports"),
		TemplatesDir:  filepath.Join(stateDir, "templates"),
		NotesDir:      "notes",
		Log:           LogConfig{Level: "info", Format: "text"},
	}
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PROMPTATLAS_CATALOGUE"); v != "" {
		c.CataloguePath = v
	}
	if v := os.Getenv("PROMPTATLAS_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PROMPTATLAS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PROMPTATLAS_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

// resolvePaths anchors relative paths at the workspace.
func (c *Config) resolvePaths() {
	for _, p := range []*string{&c.CataloguePath, &c.DBPath, &c.ExportDir, &c.TemplatesDir, &c.NotesDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(c.WorkspacePath, *p)
		}
	}
}

// WithCatalogue overrides the dataset path, e.g. from a CLI flag.
func (c Config) WithCatalogue(path string) Config {
	if strings.TrimSpace(path) == "" {
		return c
	}
	c.CataloguePath = path
	return c
}

// WithLog overrides non-empty log settings.
func (c Config) WithLog(level, format string) (Config, error) {
	if level != "" {
		c.Log.Level = level
	}
	if format != "" {
		c.Log.Format = format
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.CataloguePath == "" {
		return fmt.Errorf("catalogue path is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	return nil
}
