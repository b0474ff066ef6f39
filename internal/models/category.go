package models

// RuleTarget selects which candidate field a category rule matches against.
type RuleTarget string

const (
	RuleTargetMerchant RuleTarget = "merchant"
	RuleTargetMemo     RuleTarget = "memo"
)

// CategoryRule is user-owned reference data consumed read-only by the
// categorizer. Pattern holds a comma-separated list of tokens; each token is
// tried as an exact match first and as a pattern in a later pass.
type CategoryRule struct {
	ID         string     `json:"id" yaml:"id"`
	Pattern    string     `json:"pattern" yaml:"pattern"`
	Target     RuleTarget `json:"target" yaml:"target"`
	CategoryID string     `json:"category_id" yaml:"category_id"`
	Active     bool       `json:"active" yaml:"active"`
	Priority   int        `json:"priority" yaml:"priority"`
}

// Category is addressable by ID and may be excluded from statistics, which
// also removes it from the categorizer's name-fallback tier.
type Category struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	ExcludeFromStats bool   `json:"exclude_from_stats" yaml:"exclude_from_stats"`
}
