package cli

import (
	"fmt"
	"io"

	"github.com/ppiankov/salesight/internal/dataset"
	"github.com/ppiankov/salesight/internal/qa"
	"github.com/spf13/cobra"
)

var (
	summaryData  dataOptions
	summaryTop   int
	summaryJSON  bool
	summaryDaily bool
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print headline figures for the filtered sales data",
	Long: `Summary prints total sales, estimated profit, order count, the best month,
monthly sales, sales and average profit by category, sales by region, and the
top products. --daily adds the day-by-day sales series.

Example:
  salesight summary
  salesight summary --category Electronics --top 3 --daily
  salesight summary --region East,West --json`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryData.register(summaryCmd)
	summaryCmd.Flags().IntVar(&summaryTop, "top", 5, "number of top products to list")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print the summary as JSON")
	summaryCmd.Flags().BoolVar(&summaryDaily, "daily", false, "include sales per day")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(nil)
	if err != nil {
		return err
	}

	ds, err := summaryData.load(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	k := dataset.Summarize(ds, summaryTop)

	if summaryJSON || cfg.Output.JSON {
		return writeJSON(cmd, k)
	}

	printSummary(cmd.OutOrStdout(), qa.NewFormatter(cfg.QA.Currency), k, summaryDaily)
	return nil
}

type summarySection struct {
	title  string
	totals []dataset.Total
}

// printSummary renders k as the plain-text report
func printSummary(w io.Writer, f *qa.Formatter, k dataset.KPIs, daily bool) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  Sales Summary")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Total sales:   %s\n", f.Amount(k.TotalSales))
	fmt.Fprintf(w, "  Profit:        %s (%s%% margin)\n", f.Amount(k.Profit), dataset.ProfitMargin.Shift(2).String())
	fmt.Fprintf(w, "  Orders:        %d\n", k.Orders)
	if k.BestMonth != nil {
		fmt.Fprintf(w, "  Best month:    %s (%s)\n", k.BestMonth.Name, f.Amount(k.BestMonth.Sales))
	}

	var sections []summarySection
	if daily {
		sections = append(sections, summarySection{"Daily sales", k.Daily})
	}
	sections = append(sections,
		summarySection{"Monthly sales", k.Monthly},
		summarySection{"By region", k.ByRegion},
		summarySection{"Top products", k.TopProducts},
	)
	for _, s := range sections {
		if len(s.totals) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s:\n", s.title)
		for _, t := range s.totals {
			fmt.Fprintf(w, "    %-20s %s\n", t.Name, f.Amount(t.Sales))
		}
	}

	if len(k.Categories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  By category:")
		fmt.Fprintf(w, "    %-20s %16s %16s %16s\n", "", "sales", "profit", "avg profit")
		for _, c := range k.Categories {
			fmt.Fprintf(w, "    %-20s %16s %16s %16s\n", c.Name, f.Amount(c.Sales), f.Amount(c.Profit), f.Amount(c.AvgProfit))
		}
	}
	fmt.Fprintln(w)
}
