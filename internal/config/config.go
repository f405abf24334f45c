// Package config loads and saves project configuration from
// .efficode/config.json. API keys never touch disk — they resolve from
// the environment at load time.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all project configuration.
type Config struct {
	LLM *LLMConfig `json:"llm,omitempty"`
}

// LLMConfig holds configuration for the LLM collaborator.
type LLMConfig struct {
	Provider    string  `json:"provider"`           // "gemini" or "ollama"
	Model       string  `json:"model,omitempty"`    // e.g. "gemini-1.5-flash-latest"
	APIKey      string  `json:"-"`                  // NEVER serialized — env vars only
	BaseURL     string  `json:"base_url,omitempty"` // override for local servers/proxies
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// configFileName is the configuration file path relative to the project root.
const configFileName = ".efficode/config.json"

// Load reads the project configuration from .efficode/config.json in
// the given directory. A missing file yields a zero Config, not an
// error. Environment variables supply API keys.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(projectDir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configFileName, err)
	}

	if cfg.LLM != nil {
		key, _ := ResolveAPIKey(cfg.LLM.Provider)
		cfg.LLM.APIKey = key
	}

	return cfg, nil
}

// Save writes the config to .efficode/config.json, creating the
// directory if needed. API keys are never written (json:"-" tag).
func Save(projectDir string, cfg *Config) error {
	dir := filepath.Join(projectDir, ".efficode")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating .efficode directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	path := filepath.Join(projectDir, configFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", configFileName, err)
	}

	return nil
}

// ResolveAPIKey looks up the API key for a provider in the
// environment. Returns ("", nil) for providers that don't need keys.
func ResolveAPIKey(provider string) (string, error) {
	switch provider {
	case "gemini":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key, nil
		}
		// The older Google SDK variable is still honored.
		if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			return key, nil
		}
		return "", fmt.Errorf("no API key found for Gemini. Set the GEMINI_API_KEY environment variable")
	case "ollama":
		return "", nil
	default:
		return "", fmt.Errorf("unknown provider %q. Supported: gemini, ollama", provider)
	}
}

// DefaultLLMConfig returns a sensible starting config for a provider.
func DefaultLLMConfig(provider string) *LLMConfig {
	cfg := &LLMConfig{
		Provider:    provider,
		MaxTokens:   4096,
		Temperature: 0.2,
	}
	switch provider {
	case "gemini":
		cfg.Model = "gemini-1.5-flash-latest"
	case "ollama":
		cfg.Model = "llama3.1"
		cfg.BaseURL = "http://localhost:11434"
	}
	return cfg
}
