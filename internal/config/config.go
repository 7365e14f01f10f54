package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/vaultsandbox/magiclink/internal/storage"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Region        string `yaml:"region,omitempty"`
	Prefix        string `yaml:"prefix,omitempty"`
	Endpoint      string `yaml:"endpoint,omitempty"`
	Profile       string `yaml:"profile,omitempty"`
	PathStyle     bool   `yaml:"path_style,omitempty"`
	DefaultOutput string `yaml:"default_output,omitempty"`
}

// DefaultRegion is the region the mail bucket lives in unless overridden.
const DefaultRegion = "eu-central-1"

// Package-level state
var current Config

// Dir returns the magiclink config directory path.
// Respects MAGICLINK_CONFIG_DIR environment variable if set.
func Dir() (string, error) {
	if dir := os.Getenv("MAGICLINK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "magiclink"), nil
}

// Path returns the config file path (~/.config/magiclink/config.yaml)
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file and returns the Config struct.
// Returns an empty Config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path.
// Returns an empty Config if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile replaces package state with the YAML file at path.
// A missing file leaves the defaults in place.
func LoadFromFile(path string) error {
	cfg, err := LoadFrom(path)
	if err != nil {
		return err
	}
	current = *cfg
	return nil
}

// LoadEnvFile exports the variables in a dotenv file (AWS credentials,
// MAGICLINK_* settings). Variables already set in the environment win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// getConfigValue returns config with priority: env (MAGICLINK_<key>) > config file > default
func getConfigValue(envKey, fileValue, defaultValue string) string {
	if env := os.Getenv("MAGICLINK_" + envKey); env != "" {
		return env
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// GetRegion returns the AWS region with priority: env > config file > default
func GetRegion() string {
	return getConfigValue("REGION", current.Region, DefaultRegion)
}

// GetPrefix returns the raw email key prefix with priority: env > config file > default
func GetPrefix() string {
	return getConfigValue("PREFIX", current.Prefix, storage.DefaultPrefix)
}

// GetEndpoint returns a custom S3 endpoint (LocalStack, MinIO), empty for AWS.
func GetEndpoint() string {
	return getConfigValue("ENDPOINT", current.Endpoint, "")
}

// GetProfile returns the AWS shared config profile, empty for the default chain.
func GetProfile() string {
	return getConfigValue("PROFILE", current.Profile, "")
}

// GetPathStyle reports whether to use path-style bucket addressing.
// An unparsable MAGICLINK_PATH_STYLE falls back to the config file.
func GetPathStyle() bool {
	if env := os.Getenv("MAGICLINK_PATH_STYLE"); env != "" {
		if v, err := strconv.ParseBool(env); err == nil {
			return v
		}
	}
	return current.PathStyle
}

// GetDefaultOutput returns the output format with priority: env > config file > default
func GetDefaultOutput() string {
	return getConfigValue("OUTPUT", current.DefaultOutput, "pretty")
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
