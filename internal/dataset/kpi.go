package dataset

import (
	"sort"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/shopspring/decimal"
)

// ProfitMargin is the flat margin applied to sales when estimating profit
var ProfitMargin = decimal.RequireFromString("0.20")

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Total is a labelled sales sum
type Total struct {
	Name  string          `json:"name" yaml:"name"`
	Sales decimal.Decimal `json:"sales" yaml:"sales"`
}

// CategoryProfit is the estimated profit of one category. AvgProfit is the
// mean per-record profit, not per order.
type CategoryProfit struct {
	Name      string          `json:"name" yaml:"name"`
	Records   int             `json:"records" yaml:"records"`
	Sales     decimal.Decimal `json:"sales" yaml:"sales"`
	Profit    decimal.Decimal `json:"profit" yaml:"profit"`
	AvgProfit decimal.Decimal `json:"avg_profit" yaml:"avg_profit"`
}

// KPIs summarizes a dataset
type KPIs struct {
	Records     int              `json:"records" yaml:"records"`
	Orders      int              `json:"orders" yaml:"orders"`
	TotalSales  decimal.Decimal  `json:"total_sales" yaml:"total_sales"`
	Profit      decimal.Decimal  `json:"profit" yaml:"profit"`
	BestMonth   *Total           `json:"best_month,omitempty" yaml:"best_month,omitempty"`
	Daily       []Total          `json:"daily" yaml:"daily"`
	Monthly     []Total          `json:"monthly" yaml:"monthly"`
	ByCategory  []Total          `json:"by_category" yaml:"by_category"`
	Categories  []CategoryProfit `json:"category_profit" yaml:"category_profit"`
	ByRegion    []Total          `json:"by_region" yaml:"by_region"`
	TopProducts []Total          `json:"top_products" yaml:"top_products"`
}

// Summarize computes headline figures. Daily and Monthly are chronological.
// Group totals are sorted by sales, descending; equal sales keep first-seen order.
func Summarize(ds model.Dataset, topN int) KPIs {
	k := KPIs{
		Records:    len(ds),
		TotalSales: decimal.Zero,
	}

	orders := make(map[string]struct{}, len(ds))
	for _, r := range ds {
		k.TotalSales = k.TotalSales.Add(r.TotalSale)
		orders[r.OrderID] = struct{}{}
	}
	k.Orders = len(orders)
	k.Profit = k.TotalSales.Mul(ProfitMargin)

	k.Daily = series(ds, dayLayout)
	k.Monthly = series(ds, monthLayout)

	months := totals(ds, func(r model.Record) string { return r.Date.Format(monthLayout) })
	if len(months) > 0 {
		best := months[0]
		k.BestMonth = &best
	}

	k.ByCategory = totals(ds, func(r model.Record) string { return r.Category })
	k.Categories = categoryProfit(ds, k.ByCategory)
	k.ByRegion = totals(ds, func(r model.Record) string { return r.Region })

	k.TopProducts = totals(ds, func(r model.Record) string { return r.Product })
	if topN > 0 && len(k.TopProducts) > topN {
		k.TopProducts = k.TopProducts[:topN]
	}

	return k
}

// series sums sales per period, oldest first. ISO layouts sort chronologically as text.
func series(ds model.Dataset, layout string) []Total {
	out := group(ds, func(r model.Record) string { return r.Date.Format(layout) })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// categoryProfit follows the order of byCategory
func categoryProfit(ds model.Dataset, byCategory []Total) []CategoryProfit {
	records := make(map[string]int, len(byCategory))
	for _, r := range ds {
		records[r.Category]++
	}

	out := make([]CategoryProfit, 0, len(byCategory))
	for _, t := range byCategory {
		n := records[t.Name]
		profit := t.Sales.Mul(ProfitMargin)
		out = append(out, CategoryProfit{
			Name:      t.Name,
			Records:   n,
			Sales:     t.Sales,
			Profit:    profit,
			AvgProfit: profit.Div(decimal.NewFromInt(int64(n))),
		})
	}
	return out
}

func totals(ds model.Dataset, key func(model.Record) string) []Total {
	out := group(ds, key)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sales.GreaterThan(out[j].Sales)
	})
	return out
}

// group sums sales per key in first-seen order
func group(ds model.Dataset, key func(model.Record) string) []Total {
	index := make(map[string]int)
	var out []Total
	for _, r := range ds {
		name := key(r)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Total{Name: name, Sales: decimal.Zero})
		}
		out[i].Sales = out[i].Sales.Add(r.TotalSale)
	}
	return out
}
