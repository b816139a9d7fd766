package qa

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/salesight/internal/model"
)

const (
	// DefaultSampleRows is how many records the assistant sees by default
	DefaultSampleRows = 20

	// MaxSampleRows bounds the outbound payload regardless of configuration
	MaxSampleRows = 200
)

// SystemInstruction is sent with every assistant request
const SystemInstruction = "You are a data analyst assistant for a retail sales dashboard. " +
	"Answer questions using only the sales data provided. " +
	"If the sample is not enough to answer, say so plainly. Keep answers short."

var sampleHeader = []string{"OrderID", "Date", "CustomerName", "Region", "Product", "Category", "Quantity", "Price", "TotalSale"}

// ClampSampleRows bounds a configured sample size to [1, MaxSampleRows]
func ClampSampleRows(n int) int {
	switch {
	case n <= 0:
		return DefaultSampleRows
	case n > MaxSampleRows:
		return MaxSampleRows
	default:
		return n
	}
}

// RenderSample writes the first n records as CSV with a header row
func RenderSample(ds model.Dataset, n int) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	_ = w.Write(sampleHeader)
	for _, r := range ds.Head(n) {
		_ = w.Write([]string{
			r.OrderID,
			r.Date.Format("2006-01-02"),
			r.CustomerName,
			r.Region,
			r.Product,
			r.Category,
			strconv.Itoa(r.Quantity),
			r.Price.StringFixed(2),
			r.TotalSale.StringFixed(2),
		})
	}
	w.Flush()

	return b.String()
}

// BuildPrompt combines a capped data sample with the verbatim question
func BuildPrompt(ds model.Dataset, question string, sampleRows int) string {
	n := ClampSampleRows(sampleRows)
	shown := len(ds.Head(n))

	var b strings.Builder
	if len(ds) == 0 {
		b.WriteString("The filtered sales data is empty.\n")
	} else {
		fmt.Fprintf(&b, "Sales data sample (%d of %d rows):\n", shown, len(ds))
		b.WriteString(RenderSample(ds, n))
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)

	return b.String()
}
