// Package llm holds the language model clients used to generate answers.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"searchchat/internal/domain"
)

// OllamaConfig configures the Ollama chat client.
type OllamaConfig struct {
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Ollama generates text through the Ollama /api/chat endpoint.
type Ollama struct {
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

// NewOllama creates an Ollama client, filling unset fields with defaults.
func NewOllama(cfg OllamaConfig) *Ollama {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		cfg.BaseURL = "http://" + cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Ollama{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate sends prompt as a single user message and returns the reply content.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	body := ollamaRequest{
		Model:    o.model,
		Messages: []ollamaMessage{{Role: string(domain.RoleUser), Content: prompt}},
		Stream:   false,
		Options:  ollamaOptions{Temperature: o.temperature},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API error: %s - %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var out map[string]any
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	msg, ok := out["message"]
	if !ok {
		return "", errors.New("ollama: response has no message")
	}
	return strings.TrimSpace(domain.TextOf(msg)), nil
}
