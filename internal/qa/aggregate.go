package qa

import (
	"github.com/ppiankov/salesight/internal/model"
	"github.com/shopspring/decimal"
)

// Finding is the value a rule derived from the dataset, before rendering
type Finding struct {
	Subject string
	Value   decimal.Decimal
}

// groupTotal is one group of a group-by with its summed sales
type groupTotal struct {
	key   string
	total decimal.Decimal
}

// sumBy groups records by key and sums TotalSale. Groups keep the order in
// which their key first appears in the dataset.
func sumBy(ds model.Dataset, key func(model.Record) string) []groupTotal {
	index := make(map[string]int)
	var groups []groupTotal

	for _, r := range ds {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, groupTotal{key: k})
		}
		groups[i].total = groups[i].total.Add(r.TotalSale)
	}

	return groups
}

// maxGroupBy returns the group with the largest summed sales. Ties go to the
// group seen first. Empty datasets and datasets where no group sums above
// zero yield no finding.
func maxGroupBy(ds model.Dataset, key func(model.Record) string) (Finding, bool) {
	var best *groupTotal
	groups := sumBy(ds, key)
	for i := range groups {
		if best == nil || groups[i].total.GreaterThan(best.total) {
			best = &groups[i]
		}
	}

	if best == nil || !best.total.IsPositive() {
		return Finding{}, false
	}
	return Finding{Subject: best.key, Value: best.total}, true
}

// maxPriceRow returns the product and unit price of the most expensive row.
// Ties go to the first row.
func maxPriceRow(ds model.Dataset) (Finding, bool) {
	if len(ds) == 0 {
		return Finding{}, false
	}

	best := 0
	for i := 1; i < len(ds); i++ {
		if ds[i].Price.GreaterThan(ds[best].Price) {
			best = i
		}
	}
	return Finding{Subject: ds[best].Product, Value: ds[best].Price}, true
}
