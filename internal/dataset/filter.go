package dataset

import (
	"strings"
	"time"

	"github.com/ppiankov/salesight/internal/model"
)

// Filter narrows a dataset the way the dashboard sidebar does. Zero-value
// fields do not filter.
type Filter struct {
	Regions    []string
	Categories []string
	From       time.Time // Inclusive
	To         time.Time // Inclusive, whole day
	Search     string    // Case-insensitive match on product, customer or region
}

// IsZero reports whether the filter keeps every record
func (f Filter) IsZero() bool {
	return len(f.Regions) == 0 && len(f.Categories) == 0 &&
		f.From.IsZero() && f.To.IsZero() && strings.TrimSpace(f.Search) == ""
}

// Apply returns the matching records in their original order. ds is not modified.
func (f Filter) Apply(ds model.Dataset) model.Dataset {
	regions := set(f.Regions)
	categories := set(f.Categories)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var to time.Time
	if !f.To.IsZero() {
		y, m, d := f.To.Date()
		to = time.Date(y, m, d+1, 0, 0, 0, 0, f.To.Location())
	}

	out := make(model.Dataset, 0, len(ds))
	for _, r := range ds {
		if regions != nil && !regions[strings.ToLower(r.Region)] {
			continue
		}
		if categories != nil && !categories[strings.ToLower(r.Category)] {
			continue
		}
		if !f.From.IsZero() && r.Date.Before(f.From) {
			continue
		}
		if !to.IsZero() && !r.Date.Before(to) {
			continue
		}
		if search != "" && !matches(r, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r model.Record, search string) bool {
	return strings.Contains(strings.ToLower(r.Product), search) ||
		strings.Contains(strings.ToLower(r.CustomerName), search) ||
		strings.Contains(strings.ToLower(r.Region), search)
}

func set(values []string) map[string]bool {
	var m map[string]bool
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if m == nil {
			m = make(map[string]bool, len(values))
		}
		m[v] = true
	}
	return m
}
