package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables that override the config file.
const (
	EnvEndpoint = "JOBMATCHER_ENDPOINT"
	EnvTimeout  = "JOBMATCHER_TIMEOUT"
)

const (
	// DefaultEndpoint is the analysis service base URL used when none is configured.
	DefaultEndpoint = "http://localhost:8000"
	// DefaultTimeout bounds one submission.
	DefaultTimeout = 30 * time.Second
	// DotEnvFile is loaded from the working directory when present.
	DotEnvFile = ".env"
)

// Config represents the application configuration.
type Config struct {
	Endpoint string        `json:"endpoint"`
	Timeout  string        `json:"timeout,omitempty"`
	Pandoc   PandocConfig  `json:"pandoc,omitempty"`
	Defaults DefaultConfig `json:"defaults"`
}

// PandocConfig holds pandoc-related configuration for PDF export.
type PandocConfig struct {
	TemplatePath string `json:"template_path,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
}

// GetTimeout returns the submission timeout or DefaultTimeout if not specified.
func (c *Config) GetTimeout() (timeout time.Duration) {
	timeout = DefaultTimeout
	if c.Timeout == "" {
		return timeout
	}
	parsed, err := time.ParseDuration(c.Timeout)
	if err == nil && parsed > 0 {
		timeout = parsed
	}
	return timeout
}

// DefaultPath returns ~/.jobmatcher/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".jobmatcher", "config.json")
	return path, err
}

// Load reads configuration from file with .env and environment variable
// overrides. When configPath is empty and the default file does not exist,
// built-in defaults are used.
func Load(configPath string) (cfg Config, err error) {
	err = loadDotEnv(DotEnvFile)
	if err != nil {
		return cfg, err
	}

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'jobmatcher init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Override with environment variables if set
	if endpoint := os.Getenv(EnvEndpoint); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if timeout := os.Getenv(EnvTimeout); timeout != "" {
		cfg.Timeout = timeout
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// loadDotEnv loads variables from a .env file if one exists.
func loadDotEnv(path string) (err error) {
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		err = nil
		return err
	}

	err = godotenv.Load(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to load env file: %s", path)
		return err
	}

	return err
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() (err error) {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}

	var parsed *url.URL
	parsed, err = url.Parse(c.Endpoint)
	if err != nil {
		err = errors.Wrapf(err, "invalid endpoint: %s", c.Endpoint)
		return err
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		err = errors.Errorf("endpoint must be an http(s) URL: %s", c.Endpoint)
		return err
	}

	if c.Timeout != "" {
		var timeout time.Duration
		timeout, err = time.ParseDuration(c.Timeout)
		if err != nil {
			err = errors.Wrapf(err, "invalid timeout: %s", c.Timeout)
			return err
		}
		if timeout <= 0 {
			err = errors.Errorf("timeout must be positive: %s", c.Timeout)
			return err
		}
	}

	// Set default output_dir if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "."
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Config{
		Endpoint: DefaultEndpoint,
		Timeout:  DefaultTimeout.String(),
		Defaults: DefaultConfig{
			OutputDir: filepath.Join(homeDir, "Documents", "JobReports"),
		},
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
