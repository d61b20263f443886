package dataprocessing

import (
	"strings"

	"retailprep/internal/config"
	"retailprep/pkg/contracts/domain"
)

// Classifier assigns a product category from the description and a loyalty
// segment from customer id presence. Rules are applied in configuration
// order and the first matching rule wins, so rule ordering is part of the
// classification policy.
type Classifier struct {
	rules    []compiledRule
	fallback domain.Category
}

type compiledRule struct {
	label    domain.Category
	keywords []string // upper-cased for case-insensitive matching
}

// NewClassifier compiles the configured rule list. Keyword matching is
// case-insensitive substring matching on the description.
func NewClassifier(cfg config.ClassifierConfig) *Classifier {
	rules := make([]compiledRule, 0, len(cfg.Rules))
	for _, rule := range cfg.Rules {
		compiled := compiledRule{label: domain.Category(rule.Label)}
		for _, kw := range rule.Keywords {
			compiled.keywords = append(compiled.keywords, strings.ToUpper(kw))
		}
		rules = append(rules, compiled)
	}

	return &Classifier{rules: rules, fallback: domain.Category(cfg.Fallback)}
}

// Categorize returns the category for a product description. Every
// description gets a category; the fallback makes classification total.
func (c *Classifier) Categorize(description string) domain.Category {
	upper := strings.ToUpper(description)
	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(upper, kw) {
				return rule.label
			}
		}
	}
	return c.fallback
}

// Segment returns the loyalty segment for a customer id. An absent customer
// id is recoded rather than dropped: anonymous purchases are still sales.
func (c *Classifier) Segment(customerID string) string {
	if strings.TrimSpace(customerID) == "" {
		return domain.SegmentNonLoyal
	}
	return domain.SegmentLoyal
}

// Apply attaches category and loyalty segment to every record in place.
func (c *Classifier) Apply(records []domain.Transaction) {
	for i := range records {
		records[i].Category = c.Categorize(records[i].Description)
		records[i].LoyaltySegment = c.Segment(records[i].CustomerID)
	}
}
