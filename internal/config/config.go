// Package config loads regexify settings from a YAML file, an optional .env
// file and REGEXIFY_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/regexify/regexify/internal/util"
)

const (
	DefaultVendor      = "hf"
	// DefaultModel is the hf model used when none is configured.
	DefaultModel       = "meta-llama/Meta-Llama-3.1-8B-Instruct-fast"
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 200
	DefaultTimeout     = 30 * time.Second
	DefaultAddress     = ":8000"
	DefaultDataDir     = "./data"
	DefaultPreviewRows = 10
)

type Config struct {
	LogLevel int          `yaml:"log_level"`
	Language string       `yaml:"language"`
	Server   ServerConfig `yaml:"server"`
	Model    ModelConfig  `yaml:"model"`
}

type ServerConfig struct {
	Address     string `yaml:"address"`
	DataDir     string `yaml:"data_dir"`
	PreviewRows int    `yaml:"preview_rows"`
}

// ModelConfig selects and parameterizes the text-generation vendor.
type ModelConfig struct {
	Vendor string `yaml:"vendor"`
	// BaseURL overrides the vendor's default endpoint.
	BaseURL     string        `yaml:"base_url"`
	Name        string        `yaml:"name"`
	APIKey      string        `yaml:"api_key"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
	// APIVersion is sent by the azure vendor.
	APIVersion string `yaml:"api_version"`
	// DryRunAnswer is returned verbatim by the dryrun vendor when set.
	DryRunAnswer string `yaml:"dry_run_answer"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:     DefaultAddress,
			DataDir:     DefaultDataDir,
			PreviewRows: DefaultPreviewRows,
		},
		Model: ModelConfig{
			Vendor:      DefaultVendor,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
			Timeout:     DefaultTimeout,
		},
	}
}

// Load reads the configuration. An empty path means the default config file,
// which may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = util.GetDefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("could not parse config %s: %w", path, err)
		}
	}

	envPath, err := util.GetDefaultEnvPath()
	if err != nil {
		return nil, err
	}
	if envPath != "" {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("could not load %s: %w", envPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Language, "REGEXIFY_LANGUAGE")
	setString(&c.Server.Address, "REGEXIFY_ADDRESS")
	setString(&c.Server.DataDir, "REGEXIFY_DATA_DIR")
	setString(&c.Model.Vendor, "REGEXIFY_VENDOR")
	setString(&c.Model.BaseURL, "REGEXIFY_API_URL")
	setString(&c.Model.Name, "REGEXIFY_MODEL")
	setString(&c.Model.APIVersion, "REGEXIFY_API_VERSION")
	setString(&c.Model.APIKey, "REGEXIFY_API_KEY")

	if v := os.Getenv("REGEXIFY_LOG_LEVEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REGEXIFY_LOG_LEVEL: %w", err)
		}
		c.LogLevel = n
	}
	if v := os.Getenv("REGEXIFY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REGEXIFY_TIMEOUT: %w", err)
		}
		c.Model.Timeout = d
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = def.Server.DataDir
	}
	if c.Server.PreviewRows <= 0 {
		c.Server.PreviewRows = def.Server.PreviewRows
	}
	if c.Model.Vendor == "" {
		c.Model.Vendor = def.Model.Vendor
	}
	if c.Model.MaxTokens <= 0 {
		c.Model.MaxTokens = def.Model.MaxTokens
	}
	if c.Model.Timeout <= 0 {
		c.Model.Timeout = def.Model.Timeout
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
