package qa

import (
	"fmt"
	"strings"

	"github.com/ppiankov/salesight/internal/model"
)

// Rule answers a question deterministically when its trigger fires
type Rule struct {
	// Name identifies the rule in answers and logs
	Name string

	// Trigger inspects the lowercased question
	Trigger func(question string) bool

	// Aggregate derives the finding; false means nothing to report
	Aggregate func(ds model.Dataset) (Finding, bool)

	// Render turns the finding into text; amount is already formatted
	Render func(f Finding, amount string) string
}

// Rule names
const (
	RuleHighestSellingProduct = "highest_selling_product"
	RuleHighestSalePrice      = "highest_sale_price"
	RuleTopCustomer           = "top_customer"
	RuleTopRegion             = "top_region"
)

// Contains returns a trigger matching questions that contain phrase, ignoring case
func Contains(phrase string) func(string) bool {
	phrase = strings.ToLower(phrase)
	return func(question string) bool {
		return strings.Contains(question, phrase)
	}
}

// DefaultRules returns the built-in rules in priority order. The order is
// part of the contract: "who is the top customer in this region" is answered
// by the customer rule, not the region rule.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    RuleHighestSellingProduct,
			Trigger: Contains("highest selling product"),
			Aggregate: func(ds model.Dataset) (Finding, bool) {
				return maxGroupBy(ds, func(r model.Record) string { return r.Product })
			},
			Render: func(f Finding, amount string) string {
				return fmt.Sprintf("The highest selling product is %s with total sales of %s.", f.Subject, amount)
			},
		},
		{
			Name:      RuleHighestSalePrice,
			Trigger:   Contains("highest sale price"),
			Aggregate: maxPriceRow,
			Render: func(f Finding, amount string) string {
				return fmt.Sprintf("The highest sale price is %s, for %s.", amount, f.Subject)
			},
		},
		{
			Name:    RuleTopCustomer,
			Trigger: Contains("top customer"),
			Aggregate: func(ds model.Dataset) (Finding, bool) {
				return maxGroupBy(ds, func(r model.Record) string { return r.CustomerName })
			},
			Render: func(f Finding, amount string) string {
				return fmt.Sprintf("The top customer is %s with total purchases of %s.", f.Subject, amount)
			},
		},
		{
			Name:    RuleTopRegion,
			Trigger: Contains("region"),
			Aggregate: func(ds model.Dataset) (Finding, bool) {
				return maxGroupBy(ds, func(r model.Record) string { return r.Region })
			},
			Render: func(f Finding, amount string) string {
				return fmt.Sprintf("The top region is %s with total sales of %s.", f.Subject, amount)
			},
		},
	}
}
