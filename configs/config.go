package configs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Keys in the envconfig tags are complete variable names. Processing with an
// empty prefix keeps envconfig from falling back to unprefixed names such as
// ACCESS_TOKEN or LOG_LEVEL.
const envPrefix = ""

// FileConfig defines the structure loaded from the optional YAML configuration file.
type FileConfig struct {
	APIBaseURL    string            `yaml:"api_base_url"`
	ToolAliases   map[string]string `yaml:"tool_aliases"`   // alias -> canonical tool name
	MethodAliases map[string]string `yaml:"method_aliases"` // alias -> canonical JSON-RPC method
}

// Config holds the final application configuration, merged from file and environment variables.
// Fields are loaded from FIGMA_* environment variables, overriding file settings.
type Config struct {
	// Config File Path (Loaded first from env)
	ConfigFilePath string `envconfig:"FIGMA_CONFIG_FILE"`

	// Credential used for every Figma API call.
	AccessToken string `envconfig:"FIGMA_ACCESS_TOKEN" required:"true"`

	// File-loaded fields (merged)
	ToolAliases   map[string]string `ignored:"true"`
	MethodAliases map[string]string `ignored:"true"`

	// Environment-overridable fields
	APIBaseURL               string        `envconfig:"FIGMA_API_BASE_URL"`
	ListenAddr               string        `envconfig:"FIGMA_LISTEN_ADDR" default:":8080"`
	AdminAddr                string        `envconfig:"FIGMA_ADMIN_ADDR" default:":8081"`
	HTTPClientTimeout        time.Duration `envconfig:"FIGMA_HTTP_CLIENT_TIMEOUT" default:"0s"`
	ShutdownTimeout          time.Duration `envconfig:"FIGMA_SHUTDOWN_TIMEOUT" default:"5s"`
	OtelExporterOtlpEndpoint string        `envconfig:"FIGMA_OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool          `envconfig:"FIGMA_OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string        `envconfig:"FIGMA_LOG_LEVEL" default:"info"`
	LogFile                  string        `envconfig:"FIGMA_LOG_FILE"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load reads the environment (to find the config file), then the YAML file if
// one is named, and finally applies the environment again so it overrides the
// file. A missing or blank FIGMA_ACCESS_TOKEN is an error.
func Load() (*Config, error) {
	// 1. Load initial config from Env (primarily to get ConfigFilePath)
	var initialCfg Config
	if err := envconfig.Process(envPrefix, &initialCfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	// 2. Load config from YAML file if path is specified
	fileCfg := FileConfig{}
	if initialCfg.ConfigFilePath != "" {
		yamlFile, err := os.ReadFile(initialCfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		slog.Info("Loaded configuration from file.", "path", initialCfg.ConfigFilePath)
	}

	// 3. Start from file values, then process Env vars again for overrides.
	finalCfg := initialCfg
	finalCfg.APIBaseURL = fileCfg.APIBaseURL
	finalCfg.ToolAliases = fileCfg.ToolAliases
	finalCfg.MethodAliases = fileCfg.MethodAliases

	if err := envconfig.Process(envPrefix, &finalCfg); err != nil {
		return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
	}

	if strings.TrimSpace(finalCfg.AccessToken) == "" {
		return nil, errors.New("FIGMA_ACCESS_TOKEN must not be empty")
	}

	return &finalCfg, nil
}
