package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".ruleoverview"

// xdgConfigFile is the file name looked up in XDGConfigDir.
const xdgConfigFile = "config.yaml"

// DefaultEnvFile is the dotenv file read by ApplyEnv.
const DefaultEnvFile = ".env"

// Environment variables that override the configuration file.
const (
	EnvRoot    = "RULEOVERVIEW_ROOT"
	EnvCatalog = "RULEOVERVIEW_CATALOG"
	EnvVersion = "RULEOVERVIEW_VERSION"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .ruleoverview in the current directory
// 3. Look for .ruleoverview in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// ApplyEnv overrides cfg with RULEOVERVIEW_* variables. Variables are read
// from envFile first, if it exists, and then from the process environment,
// which takes precedence.
func ApplyEnv(cfg *Config, envFile string) error {
	vars := make(map[string]string)

	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		maps.Copy(vars, fileVars)
	}

	for _, key := range []string{EnvRoot, EnvCatalog, EnvVersion} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	applyEnvVars(cfg, vars)
	return nil
}

func applyEnvVars(cfg *Config, vars map[string]string) {
	setString(&cfg.RootDir, vars[EnvRoot])
	setString(&cfg.CatalogPath, vars[EnvCatalog])
	setString(&cfg.ProductVersion, vars[EnvVersion])
}
