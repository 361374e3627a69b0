package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"model":"llama3.1","message":{"role":"assistant","content":"  Paris.  "},"done":true}`))
	}))
	defer srv.Close()

	o := NewOllama(OllamaConfig{BaseURL: srv.URL, Model: "llama3.1", Temperature: 0.1})
	text, err := o.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Paris." {
		t.Fatalf("got %q", text)
	}
	if got.Model != "llama3.1" || got.Stream || got.Options.Temperature != 0.1 {
		t.Fatalf("unexpected request: %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "the prompt" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
}

func TestOllamaNonStringContentIsStringified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":42}}`))
	}))
	defer srv.Close()

	text, err := NewOllama(OllamaConfig{BaseURL: srv.URL}).Generate(context.Background(), "p")
	if err != nil || text != "42" {
		t.Fatalf("got %q, %v", text, err)
	}
}

func TestOllamaErrors(t *testing.T) {
	status := http.StatusInternalServerError
	body := `{"error":"model not found"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()
	o := NewOllama(OllamaConfig{BaseURL: srv.URL})

	if _, err := o.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error on 500")
	}
	status, body = http.StatusOK, `{"done":true}`
	if _, err := o.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error when message is missing")
	}
	status, body = http.StatusOK, `not json`
	if _, err := o.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error on invalid json")
	}
}

func TestNewOllamaDefaults(t *testing.T) {
	o := NewOllama(OllamaConfig{BaseURL: "localhost:11434/"})
	if o.baseURL != "http://localhost:11434" || o.model != "llama3.1" {
		t.Fatalf("unexpected defaults: %s %s", o.baseURL, o.model)
	}
}
