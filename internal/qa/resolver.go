package qa

import (
	"strings"

	"github.com/ppiankov/salesight/internal/model"
)

// Resolver answers questions from the dataset using ordered rules
type Resolver struct {
	rules  []Rule
	format *Formatter
}

// NewResolver creates a resolver. With no rules it uses DefaultRules.
func NewResolver(format *Formatter, rules ...Rule) *Resolver {
	if format == nil {
		format = NewFormatter("")
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Resolver{
		rules:  rules,
		format: format,
	}
}

// Resolve evaluates rules in order and returns the first non-empty answer.
// It returns false when no rule fired or every fired rule found nothing;
// the caller then falls back to the assistant. Resolve never mutates ds and
// holds no state between calls.
func (r *Resolver) Resolve(ds model.Dataset, question string) (model.Answer, bool) {
	q := strings.ToLower(question)

	for _, rule := range r.rules {
		if !rule.Trigger(q) {
			continue
		}

		finding, ok := rule.Aggregate(ds)
		if !ok {
			continue
		}

		return model.Answer{
			Text:    rule.Render(finding, r.format.Amount(finding.Value)),
			Source:  model.SourceRule,
			Rule:    rule.Name,
			Subject: finding.Subject,
			Value:   finding.Value,
		}, true
	}

	return model.Answer{}, false
}

// Rules returns the rule names in evaluation order
func (r *Resolver) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}
