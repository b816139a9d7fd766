package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/spf13/cobra"
)

var (
	askData    dataOptions
	askLLM     llmOptions
	askJSON    bool
	askTimeout time.Duration
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question about the sales data",
	Long: `Ask loads the sales CSV, applies the filters and answers one question.

Built-in rules answer these exactly from the filtered data:
- "highest selling product"  product with the largest total sales
- "highest sale price"       row with the largest unit price
- "top customer"             customer with the largest total purchases
- "region"                   region with the largest total sales

Any other question is sent to the configured language model with a small
sample of the filtered rows. Failures are printed as the answer.

Example:
  salesight ask "What is the highest selling product?"
  salesight ask "Who is the top customer?" --region North --from 2025-01-01
  salesight ask "Which category is growing?" --llm --llm-provider gemini`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askData.register(askCmd)
	askLLM.register(askCmd)
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the answer as JSON")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall timeout")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
	defer cancel()

	cfg, err := commandConfig(&askLLM)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Output.Verbose)

	ds, err := askData.load(ctx, cfg)
	if err != nil {
		return err
	}

	assistant, err := buildAssistant(cfg, logger)
	if err != nil {
		return err
	}

	answer := assistant.Ask(ctx, ds, question)

	if askJSON || cfg.Output.JSON {
		return writeJSON(cmd, answer)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Answered by %s\n\n", describeSource(answer))
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
	return nil
}

// describeSource names the path an answer took, for progress output
func describeSource(a model.Answer) string {
	switch a.Source {
	case model.SourceRule:
		return "rule " + a.Rule
	case model.SourceAssistantError:
		return fmt.Sprintf("assistant (failed: %s)", a.Failure)
	default:
		return string(a.Source)
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
