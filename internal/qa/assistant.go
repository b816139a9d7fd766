package qa

import (
	"context"
	"log/slog"
	"time"

	"github.com/ppiankov/salesight/internal/model"
)

// Assistant answers questions over a dataset: rules first, remote model second
type Assistant struct {
	resolver   *Resolver
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewAssistant wires a resolver and a dispatcher together
func NewAssistant(resolver *Resolver, dispatcher *Dispatcher, logger *slog.Logger) *Assistant {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	if dispatcher == nil {
		dispatcher = NewDispatcher(nil, DispatcherConfig{})
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Assistant{
		resolver:   resolver,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Ask returns exactly one answer and never fails
func (a *Assistant) Ask(ctx context.Context, ds model.Dataset, question string) model.Answer {
	start := time.Now()

	if answer, ok := a.resolver.Resolve(ds, question); ok {
		a.logger.Info("question answered",
			"route", "rule",
			"rule", answer.Rule,
			"rows", len(ds),
			"duration", time.Since(start))
		return answer
	}

	answer := a.dispatcher.Dispatch(ctx, ds, question)
	a.logger.Info("question answered",
		"route", string(answer.Source),
		"failure", string(answer.Failure),
		"rows", len(ds),
		"duration", time.Since(start))
	return answer
}
