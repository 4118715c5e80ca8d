package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultConfigPath       = "~/.config/prodview/config.toml"
	defaultDescriptionStyle = "auto"
	currentVersion          = 1
)

// Config represents the application configuration
type Config struct {
	Version    int        `toml:"version"`
	Catalog    string     `toml:"catalog"`  // product file or directory
	LogFile    string     `toml:"log_file"` // empty means the user cache dir
	Privileged bool       `toml:"privileged"`
	Watch      bool       `toml:"watch"`
	UISettings UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	DescriptionStyle string `toml:"description_style"` // glamour style name
	ShowHelpBar      bool   `toml:"show_help_bar"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service bound to path.
// An empty path selects ~/.config/prodview/config.toml.
func NewConfigService(path string) (ConfigService, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return &configService{filePath: resolved}, nil
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults if it doesn't exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Catalog = strings.TrimSpace(cfg.Catalog)
	if cfg.Catalog == "" {
		cfg.Catalog = "."
	}
	cfg.LogFile = strings.TrimSpace(cfg.LogFile)
	if strings.TrimSpace(cfg.UISettings.DescriptionStyle) == "" {
		cfg.UISettings.DescriptionStyle = defaultDescriptionStyle
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: currentVersion,
		Catalog: ".",
		Watch:   true,
		UISettings: UISettings{
			DescriptionStyle: defaultDescriptionStyle,
			ShowHelpBar:      true,
		},
	}
}

// ResolveLogFile returns the configured log file, or
// <user cache dir>/prodview/prodview.log when none is set
func (c *Config) ResolveLogFile() (string, error) {
	if c.LogFile != "" {
		return ExpandPath(c.LogFile)
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "prodview", "prodview.log"), nil
}

// ExpandPath expands a leading ~ and makes the path absolute
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
