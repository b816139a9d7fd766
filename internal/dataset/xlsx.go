package dataset

import (
	"fmt"
	"io"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet WriteXLSX fills
const SheetName = "SalesData"

// WriteXLSX writes ds as a single-sheet workbook with the standard header.
// Dates are text in DateLayout; quantities and amounts are numeric cells.
func WriteXLSX(w io.Writer, ds model.Dataset) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range ds {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.OrderID,
			r.Date.Format(DateLayout),
			r.CustomerName,
			r.Region,
			r.Product,
			r.Category,
			r.Quantity,
			r.Price.InexactFloat64(),
			r.TotalSale.InexactFloat64(),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.OrderID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
