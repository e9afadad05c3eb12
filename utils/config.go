package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the configuration for the application
type Config struct {
	DBPath    string `mapstructure:"db_path"`    // Where the corpus is saved
	Backend   string `mapstructure:"backend"`    // "json" or "sqlite"
	Engine    string `mapstructure:"engine"`     // "scan" or "bleve"
	IndexPath string `mapstructure:"index_path"` // bleve index location, empty keeps it in memory
	Editor    string `mapstructure:"editor"`     // Editor to open topic fields with
	SearchAll bool   `mapstructure:"search_all"` // Search every category by default
	Exact     bool   `mapstructure:"exact"`      // Whole word matching by default
	Category  string `mapstructure:"category"`   // Category shown at startup
	LogPath   string `mapstructure:"log_path"`   // Empty disables logging
	LogLevel  string `mapstructure:"log_level"`  // debug, info, warn, error
}

// returns where config, data and logs live by default.
func getConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".cmdref"
	}
	return filepath.Join(dir, "cmdref")
}

// DefaultConfigPath is the config file read when none is given.
func DefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

func defaultEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vi"
}

// NewConfig reads the config file at path, falling back to defaults for
// anything it leaves out. A missing file is not an error. CMDREF_* variables
// override both.
func NewConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	dir := getConfigDir()
	v.SetDefault("db_path", filepath.Join(dir, "cmdref.json"))
	v.SetDefault("backend", "json")
	v.SetDefault("engine", "scan")
	v.SetDefault("index_path", "")
	v.SetDefault("editor", defaultEditor())
	v.SetDefault("search_all", true)
	v.SetDefault("exact", false)
	v.SetDefault("category", "")
	v.SetDefault("log_path", filepath.Join(dir, "debug.log"))
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("cmdref")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, err
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case "json", "sqlite":
	default:
		return errors.New("backend must be json or sqlite, got " + c.Backend)
	}
	switch c.Engine {
	case "scan", "bleve":
	default:
		return errors.New("engine must be scan or bleve, got " + c.Engine)
	}
	return nil
}
