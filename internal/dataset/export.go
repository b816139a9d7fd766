package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ppiankov/salesight/internal/model"
)

// WriteCSV writes ds with the standard header. The output parses back with Parse.
func WriteCSV(w io.Writer, ds model.Dataset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range ds {
		row := []string{
			r.OrderID,
			r.Date.Format(DateLayout),
			r.CustomerName,
			r.Region,
			r.Product,
			r.Category,
			strconv.Itoa(r.Quantity),
			r.Price.StringFixed(2),
			r.TotalSale.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.OrderID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
