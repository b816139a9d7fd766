// Generates a synthetic goods_sales_data.csv for demos and manual testing
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/ppiankov/salesight/internal/dataset"
	"github.com/ppiankov/salesight/internal/model"
	"github.com/shopspring/decimal"
)

var regions = []string{"North", "South", "East", "West"}

var catalog = map[string][]string{
	"Electronics": {"LED TV", "Smartphone", "Laptop", "Bluetooth Speaker"},
	"Clothing":    {"T-Shirt", "Jeans", "Jacket", "Saree"},
	"Home Decor":  {"Lamp", "Wall Art", "Curtains", "Cushion Set"},
	"Groceries":   {"Rice", "Milk", "Oil", "Pulses"},
}

// Map iteration order is random; keep category picks reproducible per seed
var categories = []string{"Electronics", "Clothing", "Home Decor", "Groceries"}

var firstNames = []string{"Asha", "Vikram", "Meera", "Kabir", "Neha", "Arjun", "Priya", "Rohan", "Sara", "Dev", "Ishaan", "Lakshmi"}
var lastNames = []string{"Rao", "Das", "Shah", "Iyer", "Kapoor", "Menon", "Gupta", "Singh", "Nair", "Bose"}

func main() {
	rows := flag.Int("rows", 1000, "number of orders to generate")
	out := flag.String("out", "goods_sales_data.csv", "output path")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	ds := generate(*rows, *seed, time.Now().UTC().Truncate(24*time.Hour))

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := dataset.WriteCSV(f, ds); err != nil {
		_ = f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Generated %d orders in %s\n", len(ds), *out)
}

// generate builds n orders dated within the year before today
func generate(n int, seed uint64, today time.Time) model.Dataset {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))

	ds := make(model.Dataset, 0, n)
	for i := range n {
		category := categories[rng.IntN(len(categories))]
		products := catalog[category]

		price := decimal.NewFromInt(10000 + rng.Int64N(4990000)).Shift(-2) // 100.00 to 50000.00
		quantity := 1 + rng.IntN(10)

		ds = append(ds, model.Record{
			OrderID:      fmt.Sprintf("ORD%d", 1000+i),
			Date:         today.AddDate(0, 0, -rng.IntN(366)),
			CustomerName: firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))],
			Region:       regions[rng.IntN(len(regions))],
			Product:      products[rng.IntN(len(products))],
			Category:     category,
			Quantity:     quantity,
			Price:        price,
			TotalSale:    price.Mul(decimal.NewFromInt(int64(quantity))),
		})
	}
	return ds
}
