package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/ppiankov/salesight/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchData    dataOptions
	batchLLM     llmOptions
	concurrency  int
	batchJSON    bool
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Answer many questions from a file in parallel",
	Long: `Batch answers every question in a file against the same filtered dataset:
- Read questions from the input file (one per line, # for comments)
- Answer them concurrently with a configurable worker count
- Remote assistant calls share one rate limit and answer cache
- Print answers in the order the questions appear

Example:
  salesight batch questions.txt
  salesight batch questions.txt --concurrency 8 --llm --region South
  salesight batch questions.txt --json > answers.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchData.register(batchCmd)
	batchLLM.register(batchCmd)
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config: concurrency.workers)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "print answers as JSON")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

// batchAnswer is one line of batch JSON output
type batchAnswer struct {
	Question string        `json:"question"`
	Answer   *model.Answer `json:"answer,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	cfg, err := commandConfig(&batchLLM)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	logger := newLogger(cfg.Output.Verbose)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Salesight Batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Questions:    %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s %s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	ds, err := batchData.load(ctx, cfg)
	if err != nil {
		return err
	}

	assistant, err := buildAssistant(cfg, logger)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(assistant, cfg.Concurrency.Workers)

	fmt.Fprintf(os.Stderr, "⚙️  Answering questions over %d records...\n", len(ds))
	results, err := processor.ProcessFile(ctx, ds, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	ruleCount, assistantCount, failureCount := 0, 0, 0
	out := make([]batchAnswer, 0, len(results))

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			out = append(out, batchAnswer{Question: result.Question, Error: result.Error.Error()})
			continue
		}

		switch result.Answer.Source {
		case model.SourceRule:
			ruleCount++
		case model.SourceAssistant:
			assistantCount++
		default:
			failureCount++
		}
		answer := result.Answer
		out = append(out, batchAnswer{Question: result.Question, Answer: &answer})
	}

	if batchJSON || cfg.Output.JSON {
		if err := writeJSON(cmd, out); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, a := range out {
			fmt.Fprintf(w, "Q: %s\n", a.Question)
			if a.Answer != nil {
				fmt.Fprintf(w, "A: %s\n\n", a.Answer.Text)
			} else {
				fmt.Fprintf(w, "✗ %s\n\n", a.Error)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:       %d questions\n", len(results))
	fmt.Fprintf(os.Stderr, "  Rules:       %d\n", ruleCount)
	fmt.Fprintf(os.Stderr, "  Assistant:   %d\n", assistantCount)
	fmt.Fprintf(os.Stderr, "  Failures:    %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
