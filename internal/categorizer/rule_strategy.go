package categorizer

import (
	"regexp"
	"strings"

	"ledgerline/statement-ingest/internal/models"
	"ledgerline/statement-ingest/internal/textutils"
)

// ruleExactStrategy is the second tier: a rule matches when the stripped,
// case-folded target field exactly equals one of its pattern tokens.
type ruleExactStrategy struct {
	rules []models.CategoryRule
}

func newRuleExactStrategy(rules []models.CategoryRule) *ruleExactStrategy {
	return &ruleExactStrategy{rules: rules}
}

func (s *ruleExactStrategy) Name() string { return "rule-exact" }

func (s *ruleExactStrategy) Categorize(candidate models.TransactionCandidate) (string, bool) {
	for _, rule := range s.rules {
		field := targetField(candidate, rule.Target)
		if field == "" {
			continue
		}
		folded := textutils.FoldTight(field)
		for _, token := range splitPattern(rule.Pattern) {
			if folded == textutils.FoldTight(token) {
				return rule.CategoryID, true
			}
		}
	}
	return "", false
}

// rulePatternStrategy is the third tier: each token is tried as a
// case-insensitive regular expression, falling back to
// whitespace-insensitive substring containment when the token does not
// compile.
type rulePatternStrategy struct {
	rules []models.CategoryRule
}

func newRulePatternStrategy(rules []models.CategoryRule) *rulePatternStrategy {
	return &rulePatternStrategy{rules: rules}
}

func (s *rulePatternStrategy) Name() string { return "rule-pattern" }

func (s *rulePatternStrategy) Categorize(candidate models.TransactionCandidate) (string, bool) {
	for _, rule := range s.rules {
		field := targetField(candidate, rule.Target)
		if field == "" {
			continue
		}
		for _, token := range splitPattern(rule.Pattern) {
			if matchToken(field, token) {
				return rule.CategoryID, true
			}
		}
	}
	return "", false
}

func matchToken(field, token string) bool {
	if re, err := regexp.Compile("(?i)" + token); err == nil {
		return re.MatchString(field)
	}
	return strings.Contains(textutils.FoldTight(field), textutils.FoldTight(token))
}

// splitPattern breaks a rule's comma-separated pattern list into trimmed,
// non-empty tokens.
func splitPattern(pattern string) []string {
	var tokens []string
	for _, t := range strings.Split(pattern, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func targetField(candidate models.TransactionCandidate, target models.RuleTarget) string {
	if target == models.RuleTargetMemo {
		return candidate.Memo
	}
	return candidate.Merchant
}
