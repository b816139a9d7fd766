package qa

import (
	"testing"
	"time"

	"github.com/ppiankov/salesight/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func sale(product, customer, region, price, total string) model.Record {
	return model.Record{
		OrderID:      "ORD" + product + customer,
		Date:         time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		CustomerName: customer,
		Region:       region,
		Product:      product,
		Category:     "Electronics",
		Quantity:     1,
		Price:        dec(price),
		TotalSale:    dec(total),
	}
}

func TestResolve_HighestSellingProduct(t *testing.T) {
	ds := model.Dataset{
		{Product: "TV", TotalSale: dec("500")},
		{Product: "Fan", TotalSale: dec("1500")},
	}

	answer, ok := NewResolver(NewFormatter("₹")).Resolve(ds, "What is the highest selling product?")

	require.True(t, ok)
	assert.Equal(t, model.SourceRule, answer.Source)
	assert.Equal(t, RuleHighestSellingProduct, answer.Rule)
	assert.Equal(t, "Fan", answer.Subject)
	assert.True(t, answer.Value.Equal(dec("1500")), "got %s", answer.Value)
	assert.Contains(t, answer.Text, "Fan")
	assert.Contains(t, answer.Text, "₹1,500.00")
}

func TestResolve_HighestSellingProduct_SumsAcrossRows(t *testing.T) {
	ds := model.Dataset{
		sale("Laptop", "A", "North", "900", "900"),
		sale("Rice", "B", "South", "100", "600"),
		sale("Rice", "C", "East", "100", "600"),
	}

	answer, ok := NewResolver(nil).Resolve(ds, "highest selling product")

	require.True(t, ok)
	assert.Equal(t, "Rice", answer.Subject)
	assert.True(t, answer.Value.Equal(dec("1200")))
}

func TestResolve_GroupTieGoesToFirstSeen(t *testing.T) {
	ds := model.Dataset{
		sale("Lamp", "A", "West", "10", "300"),
		sale("Jeans", "B", "West", "10", "300"),
		sale("Curtains", "C", "West", "10", "100"),
	}

	answer, ok := NewResolver(nil).Resolve(ds, "Highest Selling Product please")

	require.True(t, ok)
	assert.Equal(t, "Lamp", answer.Subject)
}

func TestResolve_HighestSalePrice_UsesUnitPrice(t *testing.T) {
	ds := model.Dataset{
		sale("Milk", "A", "North", "50", "5000"),
		sale("LED TV", "B", "South", "999", "999"),
	}

	answer, ok := NewResolver(NewFormatter("₹")).Resolve(ds, "what was the highest sale price?")

	require.True(t, ok)
	assert.Equal(t, RuleHighestSalePrice, answer.Rule)
	assert.Equal(t, "LED TV", answer.Subject)
	assert.True(t, answer.Value.Equal(dec("999")))
}

func TestResolve_HighestSalePrice_SingleRow(t *testing.T) {
	ds := model.Dataset{{Product: "Saree", Price: dec("999"), TotalSale: dec("0")}}

	answer, ok := NewResolver(nil).Resolve(ds, "highest sale price")

	require.True(t, ok)
	assert.Equal(t, "Saree", answer.Subject)
	assert.True(t, answer.Value.Equal(dec("999")))
}

func TestResolve_HighestSalePrice_TieGoesToFirstRow(t *testing.T) {
	ds := model.Dataset{
		sale("Jacket", "A", "North", "700", "700"),
		sale("Laptop", "B", "North", "700", "1400"),
	}

	answer, ok := NewResolver(nil).Resolve(ds, "highest sale price")

	require.True(t, ok)
	assert.Equal(t, "Jacket", answer.Subject)
}

func TestResolve_TopCustomer(t *testing.T) {
	ds := model.Dataset{
		sale("Oil", "Asha Rao", "North", "100", "100"),
		sale("Laptop", "Vikram Das", "South", "400", "400"),
		sale("Rice", "Asha Rao", "North", "350", "350"),
	}

	answer, ok := NewResolver(nil).Resolve(ds, "Who is the top customer?")

	require.True(t, ok)
	assert.Equal(t, RuleTopCustomer, answer.Rule)
	assert.Equal(t, "Asha Rao", answer.Subject)
	assert.True(t, answer.Value.Equal(dec("450")))
}

func TestResolve_Region(t *testing.T) {
	ds := model.Dataset{
		sale("Oil", "A", "North", "100", "100"),
		sale("Lamp", "B", "East", "250", "250"),
		sale("Rice", "C", "North", "100", "100"),
	}

	answer, ok := NewResolver(nil).Resolve(ds, "Which REGION sells the most?")

	require.True(t, ok)
	assert.Equal(t, RuleTopRegion, answer.Rule)
	assert.Equal(t, "East", answer.Subject)
}

func TestResolve_RulePriority_TopCustomerBeforeRegion(t *testing.T) {
	ds := model.Dataset{
		sale("Oil", "Meera", "North", "100", "100"),
		sale("Lamp", "Kabir", "East", "900", "900"),
		sale("Rice", "Meera", "West", "950", "950"),
	}

	answer, ok := NewResolver(nil).Resolve(ds, "who is the top customer in this region")

	require.True(t, ok)
	assert.Equal(t, RuleTopCustomer, answer.Rule)
	assert.Equal(t, "Meera", answer.Subject)
}

func TestResolve_ProductRuleBeforePriceRule(t *testing.T) {
	ds := model.Dataset{
		sale("Milk", "A", "North", "50", "5000"),
		sale("LED TV", "B", "South", "999", "999"),
	}

	answer, ok := NewResolver(nil).Resolve(ds, "highest selling product and highest sale price")

	require.True(t, ok)
	assert.Equal(t, RuleHighestSellingProduct, answer.Rule)
	assert.Equal(t, "Milk", answer.Subject)
}

func TestResolve_EmptyDatasetNeverAnswers(t *testing.T) {
	r := NewResolver(nil)
	questions := []string{
		"What is the highest selling product?",
		"highest sale price",
		"top customer",
		"best region",
	}

	for _, q := range questions {
		t.Run(q, func(t *testing.T) {
			var answer model.Answer
			var ok bool
			assert.NotPanics(t, func() { answer, ok = r.Resolve(nil, q) })
			assert.False(t, ok)
			assert.Empty(t, answer.Text)

			_, ok = r.Resolve(model.Dataset{}, q)
			assert.False(t, ok)
		})
	}
}

func TestResolve_ZeroSumGroupsAreNoAnswer(t *testing.T) {
	ds := model.Dataset{
		sale("Lamp", "A", "North", "0", "0"),
		sale("Oil", "B", "South", "0", "0"),
	}
	r := NewResolver(nil)

	_, ok := r.Resolve(ds, "highest selling product")
	assert.False(t, ok)

	_, ok = r.Resolve(ds, "top customer")
	assert.False(t, ok)

	_, ok = r.Resolve(ds, "region")
	assert.False(t, ok)

	// A zero price row still exists, so the price rule answers
	answer, ok := r.Resolve(ds, "highest sale price")
	assert.True(t, ok)
	assert.Equal(t, "Lamp", answer.Subject)
}

func TestResolve_NoTrigger(t *testing.T) {
	ds := model.Dataset{sale("Oil", "A", "North", "100", "100")}

	_, ok := NewResolver(nil).Resolve(ds, "Which month had the best sales?")
	assert.False(t, ok)
}

func TestResolve_IsPure(t *testing.T) {
	ds := model.Dataset{
		sale("TV", "A", "North", "500", "500"),
		sale("Fan", "B", "South", "1500", "1500"),
	}
	snapshot := append(model.Dataset(nil), ds...)
	r := NewResolver(nil)

	first, ok1 := r.Resolve(ds, "highest selling product")
	second, ok2 := r.Resolve(ds, "highest selling product")

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, ds, "dataset must not be mutated")
}

func TestResolve_CustomRules(t *testing.T) {
	always := Rule{
		Name:    "orders",
		Trigger: Contains("how many orders"),
		Aggregate: func(ds model.Dataset) (Finding, bool) {
			return Finding{Subject: "orders", Value: decimal.NewFromInt(int64(len(ds)))}, len(ds) > 0
		},
		Render: func(f Finding, amount string) string { return f.Value.String() + " orders" },
	}
	r := NewResolver(nil, always)

	assert.Equal(t, []string{"orders"}, r.Rules())

	answer, ok := r.Resolve(model.Dataset{{}, {}}, "How many orders were placed?")
	require.True(t, ok)
	assert.Equal(t, "2 orders", answer.Text)
}

func TestDefaultRules_Order(t *testing.T) {
	assert.Equal(t, []string{
		RuleHighestSellingProduct,
		RuleHighestSalePrice,
		RuleTopCustomer,
		RuleTopRegion,
	}, NewResolver(nil).Rules())
}

func TestFormatter_Amount(t *testing.T) {
	f := NewFormatter("₹")
	assert.Equal(t, "₹1,234,567.50", f.Amount(dec("1234567.5")))
	assert.Equal(t, "₹0.00", f.Amount(decimal.Zero))
	assert.Equal(t, "₹999.99", f.Amount(dec("999.994")))
	assert.Equal(t, "₹1,000.00", f.Amount(dec("999.995")))
	assert.Equal(t, "-₹20.50", f.Amount(dec("-20.5")))
	assert.Equal(t, "-₹1,234.00", f.Amount(dec("-1234")))
}

func TestFormatter_AmountBeyondFloatPrecision(t *testing.T) {
	f := NewFormatter("₹")
	assert.Equal(t, "₹12,345,678,901,234,567.89", f.Amount(dec("12345678901234567.89")))
	assert.Equal(t, "₹123,456,789,012,345,678,901.01", f.Amount(dec("123456789012345678901.01")))
	assert.Equal(t, "$9,007,199,254,740,993.00", NewFormatter("$").Amount(dec("9007199254740993")))
}
