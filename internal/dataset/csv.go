package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/shopspring/decimal"
)

// DateLayout is the date format used by the sales export
const DateLayout = "2006-01-02"

// Columns lists the CSV header in export order
var Columns = []string{"OrderID", "Date", "CustomerName", "Region", "Product", "Category", "Quantity", "Price", "TotalSale"}

// required columns; TotalSale may be missing and is then derived
var required = []string{"OrderID", "Date", "CustomerName", "Region", "Product", "Category", "Quantity", "Price"}

// ErrMissingColumn is returned when the header lacks a required column
var ErrMissingColumn = errors.New("missing column")

// Load reads a sales CSV file
func Load(path string) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads sales records from CSV. Columns are located by header name, so
// their order does not matter and extra columns are ignored.
func Parse(r io.Reader) (model.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return model.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var ds model.Dataset
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRecord(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ds = append(ds, rec)
	}

	if ds == nil {
		ds = model.Dataset{}
	}
	return ds, nil
}

func parseRecord(row []string, index map[string]int) (model.Record, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := time.Parse(DateLayout, field("Date"))
	if err != nil {
		return model.Record{}, fmt.Errorf("invalid Date %q: %w", field("Date"), err)
	}

	quantity, err := strconv.Atoi(field("Quantity"))
	if err != nil {
		return model.Record{}, fmt.Errorf("invalid Quantity %q: %w", field("Quantity"), err)
	}

	price, err := decimal.NewFromString(field("Price"))
	if err != nil {
		return model.Record{}, fmt.Errorf("invalid Price %q: %w", field("Price"), err)
	}

	total := price.Mul(decimal.NewFromInt(int64(quantity)))
	if raw := field("TotalSale"); raw != "" {
		total, err = decimal.NewFromString(raw)
		if err != nil {
			return model.Record{}, fmt.Errorf("invalid TotalSale %q: %w", raw, err)
		}
	}

	return model.Record{
		OrderID:      field("OrderID"),
		Date:         date,
		CustomerName: field("CustomerName"),
		Region:       field("Region"),
		Product:      field("Product"),
		Category:     field("Category"),
		Quantity:     quantity,
		Price:        price,
		TotalSale:    total,
	}, nil
}
