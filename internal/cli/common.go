package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/salesight/internal/cache"
	"github.com/ppiankov/salesight/internal/dataset"
	"github.com/ppiankov/salesight/internal/llm"
	"github.com/ppiankov/salesight/internal/model"
	"github.com/ppiankov/salesight/internal/qa"
	"github.com/ppiankov/salesight/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dataOptions are the dataset and filter flags shared by ask, batch, summary and export
type dataOptions struct {
	path       string
	regions    []string
	categories []string
	from       string
	to         string
	search     string
}

func (o *dataOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.path, "data", "", "sales CSV file or http(s) URL (default from config: data.path)")
	cmd.Flags().StringSliceVar(&o.regions, "region", nil, "only include these regions (repeatable or comma separated)")
	cmd.Flags().StringSliceVar(&o.categories, "category", nil, "only include these categories")
	cmd.Flags().StringVar(&o.from, "from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.to, "to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.search, "search", "", "case-insensitive match on product, customer or region")
}

// filter converts the flags into a dataset filter
func (o *dataOptions) filter() (dataset.Filter, error) {
	f := dataset.Filter{
		Regions:    o.regions,
		Categories: o.categories,
		Search:     o.search,
	}

	var err error
	if o.from != "" {
		if f.From, err = time.Parse(dataset.DateLayout, o.from); err != nil {
			return f, fmt.Errorf("invalid --from %q: expected YYYY-MM-DD", o.from)
		}
	}
	if o.to != "" {
		if f.To, err = time.Parse(dataset.DateLayout, o.to); err != nil {
			return f, fmt.Errorf("invalid --to %q: expected YYYY-MM-DD", o.to)
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, fmt.Errorf("--to %s is before --from %s", o.to, o.from)
	}

	return f, nil
}

// load reads the dataset named by the flag or config, which may be a local
// path or an http(s) URL, and applies the filter
func (o *dataOptions) load(ctx context.Context, cfg *model.Config) (model.Dataset, error) {
	if o.path != "" {
		cfg.Data.Path = o.path
	}

	f, err := o.filter()
	if err != nil {
		return nil, err
	}

	fetcher := dataset.NewFetcher(time.Minute, strings.Replace(version, " v", "/", 1), 0)
	all, err := dataset.Open(ctx, cfg.Data.Path, fetcher)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	var progress io.Writer = io.Discard
	if cfg.Output.Verbose {
		progress = os.Stderr
	}
	return applyFilter(progress, f, all, cfg.Data.Path), nil
}

// applyFilter narrows all to f and reports the record counts to w. An empty
// filter returns the dataset untouched.
func applyFilter(w io.Writer, f dataset.Filter, all model.Dataset, source string) model.Dataset {
	if f.IsZero() {
		fmt.Fprintf(w, "✓ Loaded %d records from %s\n", len(all), source)
		return all
	}

	filtered := f.Apply(all)
	fmt.Fprintf(w, "✓ Loaded %d records from %s (%d after filters)\n", len(all), source, len(filtered))
	return filtered
}

// llmOptions are the assistant flags shared by ask and batch
type llmOptions struct {
	enabled  bool
	provider string
	model    string
	noCache  bool
}

func (o *llmOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.enabled, "llm", false, "forward questions the rules cannot answer to a language model")
	cmd.Flags().StringVar(&o.provider, "llm-provider", "", "LLM provider (openai, anthropic, ollama, gemini)")
	cmd.Flags().StringVar(&o.model, "llm-model", "", "LLM model name (provider default when empty)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the assistant answer cache")
}

// apply folds the flags into cfg. A provider set in the config file or
// environment enables the assistant without --llm.
func (o *llmOptions) apply(cfg *model.Config) {
	if o.provider != "" {
		cfg.LLM.Provider = o.provider
	}
	if o.enabled && cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if o.model != "" {
		cfg.LLM.Model = o.model
	}
	if o.noCache {
		cfg.Cache.Enabled = false
	}

	resolveCredentials(&cfg.LLM)
}

// resolveCredentials fills the key and endpoint from the provider's
// conventional environment variables when the config does not set them
func resolveCredentials(c *model.LLMConfig) {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))

	if c.APIKey == "" {
		if env := llm.APIKeyEnv(c.Provider); env != "" {
			c.APIKey = os.Getenv(env)
		}
	}
	if c.Provider == "ollama" && c.BaseURL == "" {
		c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
}

// commandConfig loads the merged configuration and applies command flags
func commandConfig(opts *llmOptions) (*model.Config, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if opts != nil {
		opts.apply(cfg)
	}
	return cfg, nil
}

// buildAssistant wires rules, provider, cache and limiter from cfg. A missing
// credential is not fatal: the assistant reports itself unavailable instead.
func buildAssistant(cfg *model.Config, logger *slog.Logger) (*qa.Assistant, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		fmt.Fprintf(os.Stderr, "⚠️  %s is not set; questions the rules cannot answer will be reported as unavailable\n",
			llm.APIKeyEnv(cfg.LLM.Provider))
		logger.Warn("assistant disabled", "provider", cfg.LLM.Provider, "error", err)
		provider = nil
	case err != nil:
		return nil, fmt.Errorf("configure assistant: %w", err)
	}

	dispatcher := qa.NewDispatcher(provider, qa.DispatcherConfig{
		SampleRows: cfg.QA.SampleRows,
		Timeout:    time.Duration(cfg.LLM.Timeout) * time.Second,
		Cache:      cache.New(cfg.Cache),
		Limiter:    worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		Logger:     logger,
	})

	resolver := qa.NewResolver(qa.NewFormatter(cfg.QA.Currency))

	if cfg.Output.Verbose && provider != nil {
		fmt.Fprintf(os.Stderr, "✓ Assistant: %s (rules: %s)\n", provider.Name(), strings.Join(resolver.Rules(), ", "))
	}

	return qa.NewAssistant(resolver, dispatcher, logger), nil
}
