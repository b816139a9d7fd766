package qa

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/salesight/internal/cache"
	"github.com/ppiankov/salesight/internal/llm"
	"github.com/ppiankov/salesight/internal/model"
)

// RateWaiter blocks until an outbound call for key may proceed
type RateWaiter interface {
	Wait(ctx context.Context, key string) error
}

// DispatcherConfig holds the dispatcher's optional collaborators and limits
type DispatcherConfig struct {
	SampleRows int           // Records sent as context, clamped to [1, MaxSampleRows]
	Timeout    time.Duration // Upper bound on one remote call; 0 means 30s
	Model      string        // Overrides the provider's configured model
	Cache      cache.Cache   // Optional; stores successful answers
	CacheTTL   time.Duration // 0 uses the cache default
	Limiter    RateWaiter    // Optional; throttles remote calls per provider
	Logger     *slog.Logger
}

// Dispatcher forwards questions the rules could not answer to a text-completion provider
type Dispatcher struct {
	provider   llm.Provider
	sampleRows int
	timeout    time.Duration
	model      string
	cache      cache.Cache
	cacheTTL   time.Duration
	limiter    RateWaiter
	logger     *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil provider is valid and means no
// credential was configured; every dispatch then reports the assistant as unavailable.
func NewDispatcher(provider llm.Provider, cfg DispatcherConfig) *Dispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Dispatcher{
		provider:   provider,
		sampleRows: ClampSampleRows(cfg.SampleRows),
		timeout:    timeout,
		model:      cfg.Model,
		cache:      cfg.Cache,
		cacheTTL:   cfg.CacheTTL,
		limiter:    cfg.Limiter,
		logger:     logger,
	}
}

// Available reports whether a provider is configured
func (d *Dispatcher) Available() bool {
	return d != nil && d.provider != nil
}

// Dispatch asks the provider and returns its text verbatim. Every failure,
// including a panicking provider, becomes an answer naming the failure; at
// most one remote attempt is made.
func (d *Dispatcher) Dispatch(ctx context.Context, ds model.Dataset, question string) (answer model.Answer) {
	if !d.Available() {
		return model.Answer{
			Text:   "Assistant unavailable: no language model is configured, and no built-in rule could answer this question.",
			Source: model.SourceUnavailable,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			answer = d.failure(fmt.Errorf("provider panic: %v", r))
		}
	}()

	prompt := BuildPrompt(ds, question, d.sampleRows)
	key := cache.Key(d.provider.Name(), d.effectiveModel(), SystemInstruction, prompt)

	if d.cache != nil {
		if cached, found := d.cache.Get(key); found {
			d.logger.Debug("assistant answer served from cache", "provider", d.provider.Name())
			return model.Answer{Text: string(cached), Source: model.SourceAssistant}
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if d.limiter != nil {
		if err := d.limiter.Wait(callCtx, d.provider.Name()); err != nil {
			return d.failure(fmt.Errorf("%w: %v", llm.ErrRateLimited, err))
		}
	}

	start := time.Now()
	resp, err := d.provider.Complete(callCtx, llm.CompletionRequest{
		System: SystemInstruction,
		Prompt: prompt,
		Model:  d.model,
	})
	if err != nil {
		return d.failure(err)
	}

	d.logger.Debug("assistant answered",
		"provider", d.provider.Name(),
		"model", resp.Model,
		"tokens", resp.TokensUsed,
		"duration", time.Since(start))

	if d.cache != nil {
		if err := d.cache.Set(key, []byte(resp.Text), d.cacheTTL); err != nil {
			d.logger.Warn("failed to cache assistant answer", "error", err)
		}
	}

	return model.Answer{Text: resp.Text, Source: model.SourceAssistant}
}

// effectiveModel is the model that will answer: the override, else the provider's own
func (d *Dispatcher) effectiveModel() string {
	if d.model != "" {
		return d.model
	}
	return d.provider.Model()
}

func (d *Dispatcher) failure(err error) model.Answer {
	kind := llm.Classify(err)
	d.logger.Warn("assistant call failed", "provider", d.provider.Name(), "kind", string(kind), "error", err)

	return model.Answer{
		Text:    fmt.Sprintf("Assistant error (%s): %v", kind, err),
		Source:  model.SourceAssistantError,
		Failure: kind,
	}
}
