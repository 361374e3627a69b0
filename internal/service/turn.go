// Package service runs one conversational turn: search, condense, prompt,
// generate, reply.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"searchchat/internal/domain"
	"searchchat/internal/prompt"
)

const instrumentationName = "searchchat"

// Literal replies and substitutions used by the turn pipeline.
const (
	Greeting           = "Hi! Ask me anything and I'll search for the latest information."
	SearchFallback     = "Search temporarily unavailable."
	GenerationFallback = "I encountered an error generating the response. Please try rephrasing your question."
)

var (
	// ErrSearchFailure marks a search error that was replaced by SearchFallback.
	ErrSearchFailure = errors.New("search failure")
	// ErrGenerationFailure marks a model error that was replaced by GenerationFallback.
	ErrGenerationFailure = errors.New("generation failure")
)

// Processor answers the latest user message of a conversation. Collaborator
// errors are recovered locally; Process always appends exactly one assistant
// message.
type Processor struct {
	searcher  domain.Searcher
	condenser domain.Condenser
	generator domain.Generator
	logger    *slog.Logger
	tracer    trace.Tracer
	turns     metric.Int64Counter
	fallbacks metric.Int64Counter
	duration  metric.Float64Histogram
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTracer sets the tracer used for turn, search and generate spans.
func WithTracer(t trace.Tracer) Option {
	return func(p *Processor) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithMeter sets the meter used to create the turn instruments.
func WithMeter(m metric.Meter) Option {
	return func(p *Processor) {
		if m != nil {
			p.initInstruments(m)
		}
	}
}

// NewProcessor wires the collaborators of a turn.
func NewProcessor(searcher domain.Searcher, condenser domain.Condenser, generator domain.Generator, opts ...Option) *Processor {
	p := &Processor{
		searcher:  searcher,
		condenser: condenser,
		generator: generator,
		logger:    slog.Default(),
		tracer:    otel.Tracer(instrumentationName),
	}
	p.initInstruments(otel.Meter(instrumentationName))
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) initInstruments(m metric.Meter) {
	var err error
	if p.turns, err = m.Int64Counter("searchchat.turns",
		metric.WithDescription("Turns processed")); err != nil {
		p.turns = noop.Int64Counter{}
	}
	if p.fallbacks, err = m.Int64Counter("searchchat.fallbacks",
		metric.WithDescription("Collaborator failures replaced by fallback text")); err != nil {
		p.fallbacks = noop.Int64Counter{}
	}
	if p.duration, err = m.Float64Histogram("searchchat.stage.duration",
		metric.WithDescription("Stage duration in milliseconds"),
		metric.WithUnit("ms")); err != nil {
		p.duration = noop.Float64Histogram{}
	}
}

// Process runs one turn against conv and appends the assistant reply to it.
// An empty conversation receives the greeting without contacting search or
// the model.
func (p *Processor) Process(ctx context.Context, conv *domain.Conversation) Turn {
	ctx, span := p.tracer.Start(ctx, "turn")
	defer span.End()

	p.logger.Info("processing user request", "messages", conv.Len())
	turn := Turn{States: []State{StateIdle}}

	last, ok := conv.Last()
	if !ok {
		turn.enter(StateAwaitingInput)
		turn.Message = domain.NewAssistantMessage(Greeting)
		conv.Append(turn.Message)
		p.turns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "greeting")))
		return turn
	}

	turn.enter(StateAwaitingInput)
	turn.Question = domain.TextOf(last)
	p.logger.Info("user question", "question", preview(turn.Question, 100))

	condensed := p.searchAndCondense(ctx, &turn)
	turn.Prompt = prompt.Build(condensed, turn.Question)
	content := p.generate(ctx, &turn)

	turn.enter(StateResponded)
	turn.Message = domain.NewAssistantMessage(content)
	conv.Append(turn.Message)

	outcome := "answered"
	if turn.Failed() {
		outcome = "degraded"
		span.SetStatus(codes.Error, "turn degraded to fallback")
	}
	span.SetAttributes(attribute.Int("searchchat.failures", len(turn.Failures)))
	p.turns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	return turn
}

func (p *Processor) searchAndCondense(ctx context.Context, turn *Turn) string {
	ctx, span := p.tracer.Start(ctx, "search")
	defer span.End()

	turn.enter(StateSearching)
	p.logger.Info("searching")
	start := time.Now()
	raw, err := p.searcher.Search(ctx, turn.Question)
	p.recordDuration(ctx, "search", start)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSearchFailure, err)
		p.fail(ctx, span, turn, "search", err)
		return SearchFallback
	}

	turn.enter(StateCondensing)
	condensed := p.condenser.Condense(raw)
	p.logger.Info("search completed",
		"raw_chars", utf8.RuneCountInString(raw),
		"condensed_chars", utf8.RuneCountInString(condensed))
	return condensed
}

func (p *Processor) generate(ctx context.Context, turn *Turn) string {
	ctx, span := p.tracer.Start(ctx, "generate")
	defer span.End()

	turn.enter(StateGenerating)
	p.logger.Info("generating response")
	start := time.Now()
	content, err := p.generator.Generate(ctx, turn.Prompt)
	p.recordDuration(ctx, "generate", start)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrGenerationFailure, err)
		p.fail(ctx, span, turn, "generate", err)
		return GenerationFallback
	}
	p.logger.Info("response generated successfully", "chars", utf8.RuneCountInString(content))
	return content
}

func (p *Processor) fail(ctx context.Context, span trace.Span, turn *Turn, stage string, err error) {
	turn.enter(StateFailed)
	turn.Failures = append(turn.Failures, err)
	p.logger.Error(stage+" failed", "error", err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	p.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

func (p *Processor) recordDuration(ctx context.Context, stage string, start time.Time) {
	ms := float64(time.Since(start).Microseconds()) / 1000
	p.duration.Record(ctx, ms, metric.WithAttributes(attribute.String("stage", stage)))
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
