// Package categorizer assigns categories to transaction candidates through
// a layered, priority-ordered rule evaluation:
//  1. issuer heuristics over a fixed merchant keyword table
//  2. exact matches against user rules
//  3. pattern matches against user rules
//  4. category-name substring fallback
//
// The first tier that produces a category wins; candidates no tier matches
// stay uncategorized.
package categorizer

import (
	"sort"

	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/models"
)

// Strategy is one categorization tier. Implementations return the category
// ID and true on a hit.
type Strategy interface {
	Name() string
	Categorize(candidate models.TransactionCandidate) (string, bool)
}

// Categorizer evaluates the tiers in order against read-only snapshots of
// the rule and category reference data.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// New builds a Categorizer for one import run. Rules are evaluated by
// ascending priority; inactive rules and excluded categories are filtered
// by the respective tiers.
func New(rules []models.CategoryRule, categories []models.Category, issuer *models.IssuerProfile, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	active := make([]models.CategoryRule, 0, len(rules))
	for _, r := range rules {
		if r.Active {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority < active[j].Priority
	})

	return &Categorizer{
		logger: logger,
		strategies: []Strategy{
			newIssuerStrategy(issuer, categories),
			newRuleExactStrategy(active),
			newRulePatternStrategy(active),
			newNameFallbackStrategy(categories),
		},
	}
}

// Categorize returns the category ID for one candidate, or "" when no tier
// matched.
func (c *Categorizer) Categorize(candidate models.TransactionCandidate) string {
	for _, s := range c.strategies {
		if id, ok := s.Categorize(candidate); ok {
			c.logger.Debug("Candidate categorized",
				logging.Field{Key: "strategy", Value: s.Name()},
				logging.Field{Key: "merchant", Value: candidate.Merchant},
				logging.Field{Key: "category", Value: id})
			return id
		}
	}
	return ""
}

// CategorizeAll categorizes a batch, preserving input order. The returned
// slice is aligned index-for-index with the input; "" marks an
// uncategorized candidate.
func (c *Categorizer) CategorizeAll(candidates []models.TransactionCandidate) []string {
	ids := make([]string, len(candidates))
	for i, candidate := range candidates {
		ids[i] = c.Categorize(candidate)
	}
	return ids
}
