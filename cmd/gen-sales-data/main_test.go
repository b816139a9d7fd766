package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/ppiankov/salesight/internal/dataset"
)

func TestGenerate(t *testing.T) {
	today := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	ds := generate(200, 42, today)

	if len(ds) != 200 {
		t.Fatalf("expected 200 rows, got %d", len(ds))
	}

	for _, r := range ds {
		if r.Quantity < 1 || r.Quantity > 10 {
			t.Errorf("%s: quantity %d out of range", r.OrderID, r.Quantity)
		}
		if r.Price.IntPart() < 100 || r.Price.IntPart() >= 50000 {
			t.Errorf("%s: price %s out of range", r.OrderID, r.Price)
		}
		if r.Date.After(today) || r.Date.Before(today.AddDate(-1, 0, -1)) {
			t.Errorf("%s: date %s outside the last year", r.OrderID, r.Date)
		}
		found := false
		for _, p := range catalog[r.Category] {
			if p == r.Product {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: product %s not in category %s", r.OrderID, r.Product, r.Category)
		}
	}
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	today := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	var a, b bytes.Buffer
	if err := dataset.WriteCSV(&a, generate(50, 7, today)); err != nil {
		t.Fatal(err)
	}
	if err := dataset.WriteCSV(&b, generate(50, 7, today)); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("same seed produced different data")
	}

	parsed, err := dataset.Parse(&a)
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	if len(parsed) != 50 {
		t.Errorf("expected 50 parsed rows, got %d", len(parsed))
	}
}
