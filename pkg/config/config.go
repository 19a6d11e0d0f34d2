// Package config loads the PlanPilot service configuration from YAML
// with environment variable fallbacks for secrets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Backend endpoint (OpenAI-compatible chat completions API)
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`

	// Model registry: human-readable label -> backend model identifier
	Models map[string]string `yaml:"models"`

	// Per-tool default model selections (backend identifiers)
	DefaultChatModel    string `yaml:"default_chat_model"`
	DefaultCompareModel string `yaml:"default_compare_model"`
	DefaultJudgeModel   string `yaml:"default_judge_model"`
	DefaultAgentModel   string `yaml:"default_agent_model"`

	// Generation defaults
	Temperature float64 `yaml:"temperature"`

	// Directory holding the synthetic transition fixture files
	FixturesDir string `yaml:"fixtures_dir"`

	// HTTP server
	HTTPPort int `yaml:"http_port"`
}

// defaultModels is the built-in registry used when the config file
// does not declare its own model table.
func defaultModels() map[string]string {
	return map[string]string{
		"GPT-3.5 Turbo":           "azure/genailab-maas-gpt-35-turbo",
		"GPT-4o":                  "azure/genailab-maas-gpt-4o",
		"GPT-4o Mini":             "azure/genailab-maas-gpt-4o-mini",
		"DeepSeek R1 (Reasoning)": "azure_ai/genailab-maas-DeepSeek-R1",
		"DeepSeek V3":             "azure_ai/genailab-maas-DeepSeek-V3-0324",
		"Llama 3.2 90B Vision":    "azure_ai/genailab-maas-Llama-3.2-90B-Vision-Instruct",
		"Llama 3.3 70B":           "azure_ai/genailab-maas-Llama-3.3-70B-Instruct",
		"Llama 4 Maverick 17B":    "azure_ai/genailab-maas-Llama-4-Maverick-17B-128E-Instruct-FP8",
		"Phi 3.5 Vision":          "azure_ai/genailab-maas-Phi-3.5-vision-instruct",
		"Phi 4 Reasoning":         "azure_ai/genailab-maas-Phi-4-reasoning",
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from trusted CLI input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with all defaults applied and no file input.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Models == nil {
		c.Models = defaultModels()
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://genailab.tcs.in"
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GENAI_API_KEY")
	}
	if c.DefaultChatModel == "" {
		c.DefaultChatModel = c.Models["DeepSeek V3"]
	}
	if c.DefaultCompareModel == "" {
		c.DefaultCompareModel = c.Models["GPT-4o"]
	}
	if c.DefaultJudgeModel == "" {
		c.DefaultJudgeModel = c.Models["Phi 4 Reasoning"]
	}
	if c.DefaultAgentModel == "" {
		c.DefaultAgentModel = c.DefaultChatModel
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
	if c.HTTPPort == 0 {
		c.HTTPPort = 8080
	}
	if c.FixturesDir == "" {
		c.FixturesDir = "fixtures"
	}
}

// Resolve maps a human-readable model label to its backend identifier.
// Values that are not registry labels pass through unchanged, so callers
// may select models by backend identifier directly.
func (c *Config) Resolve(model string) string {
	if id, ok := c.Models[model]; ok {
		return id
	}
	return model
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api_key must be set in the config file or via GENAI_API_KEY")
	}
	return nil
}
