package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BraveConfig holds credentials for the Brave search API.
type BraveConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
}

// SearchConfig selects and configures the web search provider.
type SearchConfig struct {
	Type        string       `yaml:"type"`
	TimeoutSecs int          `yaml:"timeout_secs"`
	Brave       *BraveConfig `yaml:"brave,omitempty"`
}

// OllamaConfig contains connection details for a local Ollama server.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
}

// OpenAIConfig contains connection details for an OpenAI-compatible API.
type OpenAIConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// LLMConfig selects and configures the language model backend.
type LLMConfig struct {
	Type        string        `yaml:"type"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	TimeoutSecs int           `yaml:"timeout_secs"`
	Ollama      *OllamaConfig `yaml:"ollama,omitempty"`
	OpenAI      *OpenAIConfig `yaml:"openai,omitempty"`
}

// CondenserConfig configures how search results are shortened.
type CondenserConfig struct {
	Type          string `yaml:"type"`
	MaxSentences  int    `yaml:"max_sentences"`
	MinLength     int    `yaml:"min_length"`
	FallbackChars int    `yaml:"fallback_chars"`
	MaxChars      int    `yaml:"max_chars"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// TelemetryConfig toggles OpenTelemetry export to local files.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// HistoryConfig toggles the SQLite transcript store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Search    SearchConfig    `yaml:"search"`
	LLM       LLMConfig       `yaml:"llm"`
	Condenser CondenserConfig `yaml:"condenser"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	History   HistoryConfig   `yaml:"history"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/searchchat/config.yaml.
// If neither exists, it writes defaults to ~/.config/searchchat/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "searchchat", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Search.Type == "" {
		cfg.Search.Type = "duckduckgo"
	}
	if cfg.Search.TimeoutSecs == 0 {
		cfg.Search.TimeoutSecs = 15
	}
	if cfg.Search.Type == "brave" {
		if cfg.Search.Brave == nil {
			cfg.Search.Brave = &BraveConfig{}
		}
		if cfg.Search.Brave.APIKeyEnv == "" {
			cfg.Search.Brave.APIKeyEnv = "BRAVE_API_KEY"
		}
	}

	if cfg.LLM.Type == "" {
		cfg.LLM.Type = "ollama"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 120
	}
	switch cfg.LLM.Type {
	case "ollama":
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = "llama3.1"
		}
		if cfg.LLM.Ollama == nil {
			cfg.LLM.Ollama = &OllamaConfig{}
		}
		if cfg.LLM.Ollama.BaseURL == "" {
			cfg.LLM.Ollama.BaseURL = "http://localhost:11434"
		}
	case "openai":
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = "gpt-4o-mini"
		}
		if cfg.LLM.OpenAI == nil {
			cfg.LLM.OpenAI = &OpenAIConfig{}
		}
		if cfg.LLM.OpenAI.BaseURL == "" {
			cfg.LLM.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.LLM.OpenAI.APIKeyEnv == "" {
			cfg.LLM.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
	}

	if cfg.Condenser.Type == "" {
		cfg.Condenser.Type = "sentence"
	}
	if cfg.Condenser.MaxSentences == 0 {
		cfg.Condenser.MaxSentences = 5
	}
	if cfg.Condenser.MinLength == 0 {
		cfg.Condenser.MinLength = 20
	}
	if cfg.Condenser.FallbackChars == 0 {
		cfg.Condenser.FallbackChars = 500
	}
	if cfg.Condenser.MaxChars == 0 {
		cfg.Condenser.MaxChars = 1500
	}

	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join("logs", "searchchat.log")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Telemetry.Dir == "" {
		cfg.Telemetry.Dir = "logs"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "searchchat.db"
	}
}
