package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"searchchat/internal/condenser"
	"searchchat/internal/config"
	"searchchat/internal/domain"
	"searchchat/internal/history"
	"searchchat/internal/llm"
	"searchchat/internal/search"
	"searchchat/internal/service"
	"searchchat/internal/telemetry"
	"searchchat/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, sessionID string
	var debug bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/searchchat/config.yaml if not provided)")
	flag.StringVar(&sessionID, "session", "", "Resume a stored session by ID (requires history.enabled)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	logger, logFile, err := telemetry.InitLogger(telemetry.LoggerConfig{File: cfg.Log.File, Level: level})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg, logger, sessionID); err != nil {
		logger.Error("searchchat exited with error", "error", err)
		logFile.Close()
		log.Fatal(err)
	}
}

func run(cfg *config.AppConfig, logger *slog.Logger, sessionID string) error {
	ctx := context.Background()

	providers := telemetry.Noop()
	if cfg.Telemetry.Enabled {
		p, err := telemetry.InitTelemetry(ctx, cfg.Telemetry.Dir)
		if err != nil {
			return fmt.Errorf("telemetry init failed: %w", err)
		}
		providers = p
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	// Assemble components
	var searcher domain.Searcher
	searchTimeout := time.Duration(cfg.Search.TimeoutSecs) * time.Second
	switch cfg.Search.Type {
	case "duckduckgo", "":
		searcher = search.NewDuckDuckGo(searchTimeout)
	case "brave":
		if cfg.Search.Brave == nil {
			return fmt.Errorf("brave search config missing")
		}
		key := os.Getenv(cfg.Search.Brave.APIKeyEnv)
		if key == "" {
			return fmt.Errorf("missing API key in env %s", cfg.Search.Brave.APIKeyEnv)
		}
		searcher = search.NewBrave(key, searchTimeout)
	default:
		return fmt.Errorf("unknown search provider: %s", cfg.Search.Type)
	}

	var generator domain.Generator
	llmTimeout := time.Duration(cfg.LLM.TimeoutSecs) * time.Second
	switch cfg.LLM.Type {
	case "ollama", "":
		var baseURL string
		if cfg.LLM.Ollama != nil {
			baseURL = cfg.LLM.Ollama.BaseURL
		}
		generator = llm.NewOllama(llm.OllamaConfig{
			BaseURL:     baseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     llmTimeout,
		})
	case "openai":
		if cfg.LLM.OpenAI == nil {
			return fmt.Errorf("openai llm config missing")
		}
		client, err := llm.NewOpenAI(llm.OpenAIConfig{
			BaseURL:     cfg.LLM.OpenAI.BaseURL,
			APIKeyEnv:   cfg.LLM.OpenAI.APIKeyEnv,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     llmTimeout,
		})
		if err != nil {
			return fmt.Errorf("openai llm init failed: %w", err)
		}
		generator = client
	default:
		return fmt.Errorf("unknown llm: %s", cfg.LLM.Type)
	}

	cond, err := condenser.New(cfg.Condenser.Type, condenser.Options{
		MaxSentences:  cfg.Condenser.MaxSentences,
		MinLength:     cfg.Condenser.MinLength,
		FallbackChars: cfg.Condenser.FallbackChars,
		MaxChars:      cfg.Condenser.MaxChars,
	})
	if err != nil {
		return err
	}

	proc := service.NewProcessor(searcher, cond, generator,
		service.WithLogger(logger),
		service.WithTracer(providers.Tracer),
		service.WithMeter(providers.Meter),
	)

	conv := domain.NewConversation()
	var transcript tui.Transcript
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("history init failed: %w", err)
		}
		defer store.Close()
		if sessionID == "" {
			sessionID = history.NewSessionID()
		}
		sess := store.Session(sessionID)
		if conv, err = sess.Load(ctx); err != nil {
			return fmt.Errorf("failed to load session %s: %w", sessionID, err)
		}
		transcript = sess
		logger.Info("session ready", "session_id", sessionID, "messages", conv.Len())
	} else if sessionID != "" {
		logger.Warn("ignoring --session because history is disabled", "session_id", sessionID)
	}

	logger.Info("starting searchchat",
		"search", cfg.Search.Type,
		"llm", cfg.LLM.Type,
		"model", cfg.LLM.Model,
		"condenser", cfg.Condenser.Type)

	m := tui.New(proc, transcript, conv, logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}
