package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	GitHub   GitHubConfig   `yaml:"github"`
	LLM      LLMConfig      `yaml:"llm"`
	Events   EventsConfig   `yaml:"events"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GitHubConfig holds the GitHub App identity and API settings.
type GitHubConfig struct {
	AppID int64 `yaml:"app_id"`

	// PrivateKey is the App's PEM private key inline; PrivateKeyPath
	// points at a PEM file. Exactly one should be set.
	PrivateKey     string `yaml:"private_key"`
	PrivateKeyPath string `yaml:"private_key_path"`

	// WebhookSecret enables HMAC verification of inbound webhooks when
	// non-empty. The bot accepts unsigned deliveries otherwise.
	WebhookSecret string `yaml:"webhook_secret"`

	// APIBaseURL overrides the GitHub API endpoint (GHE, tests).
	APIBaseURL string `yaml:"api_base_url"`
}

// LLMConfig holds the classification model settings.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int64   `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// EventsConfig controls which pull request actions enter the pipeline.
type EventsConfig struct {
	Opened bool `yaml:"opened"`
	Edited bool `yaml:"edited"`
}

// PipelineConfig controls the wiring between pipeline stages.
type PipelineConfig struct {
	// CloseAfterComment wires the closer to pr.commented, so a spam PR
	// is always commented on before it is closed. When false the closer
	// consumes pr.analysed directly and does not wait for the comment.
	CloseAfterComment bool `yaml:"close_after_comment"`
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4",
			MaxTokens:   1500,
			Temperature: 0.5,
		},
		Events: EventsConfig{
			Opened: true,
			Edited: true,
		},
		Pipeline: PipelineConfig{
			CloseAfterComment: true,
		},
	}
}

// Load reads and parses the config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Substitute environment variables
	data = envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(varName)))
	})

	// Start with defaults
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// PrivateKeyPEM resolves the App private key from the inline value or the
// configured file path.
func (g *GitHubConfig) PrivateKeyPEM() ([]byte, error) {
	if g.PrivateKey != "" {
		return []byte(g.PrivateKey), nil
	}
	if g.PrivateKeyPath == "" {
		return nil, fmt.Errorf("github.private_key or github.private_key_path must be set")
	}
	key, err := os.ReadFile(g.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}
	return key, nil
}
