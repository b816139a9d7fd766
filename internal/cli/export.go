package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/salesight/internal/dataset"
	"github.com/ppiankov/salesight/internal/model"
	"github.com/spf13/cobra"
)

var (
	exportData   dataOptions
	exportOut    string
	exportFormat string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered sales data as CSV or Excel",
	Long: `Export writes the records that pass the filters, in the same column layout
the dataset is read from. The format follows --format, or the --out extension
when --format is not given.

Example:
  salesight export --region North --out north.csv
  salesight export --category Electronics --out electronics.xlsx
  salesight export --search laptop --format xlsx > laptops.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportData.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output path (- for stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "csv or xlsx (default from the --out extension, else csv)")
}

// exportWriter picks the encoder for format, inferring it from out when format is empty
func exportWriter(format, out string) (func(io.Writer, model.Dataset) error, error) {
	if format == "" {
		format = "csv"
		if strings.EqualFold(filepath.Ext(out), ".xlsx") {
			format = "xlsx"
		}
	}

	switch strings.ToLower(format) {
	case "csv":
		return dataset.WriteCSV, nil
	case "xlsx", "excel":
		return dataset.WriteXLSX, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (use csv or xlsx)", format)
	}
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	cfg, err := commandConfig(nil)
	if err != nil {
		return err
	}

	write, err := exportWriter(exportFormat, exportOut)
	if err != nil {
		return err
	}

	ds, err := exportData.load(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if exportOut == "-" || exportOut == "" {
		return write(cmd.OutOrStdout(), ds)
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	if err := write(f, ds); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Exported %d records to %s\n", len(ds), exportOut)
	return nil
}
