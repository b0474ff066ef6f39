package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/models"
)

var testCategories = []models.Category{
	{ID: "cat-telecom", Name: "통신"},
	{ID: "cat-coffee", Name: "카페/커피"},
	{ID: "cat-grocery", Name: "식료품"},
	{ID: "cat-custom", Name: "내맘대로"},
	{ID: "cat-transfer", Name: "이체", ExcludeFromStats: true},
}

func merchantCandidate(merchant string) models.TransactionCandidate {
	return models.TransactionCandidate{Merchant: merchant}
}

func TestIssuerTierWinsOverUserRules(t *testing.T) {
	// A user rule also matches the telecom merchant, but the issuer tier
	// runs first and must win.
	rules := []models.CategoryRule{
		{ID: "r1", Pattern: "SK텔레콤", Target: models.RuleTargetMerchant, CategoryID: "cat-custom", Active: true},
	}
	issuer := &models.IssuerProfile{Name: "samsungcard", StripMerchantPrefix: true}

	c := New(rules, testCategories, issuer, &logging.MockLogger{})
	assert.Equal(t, "cat-telecom", c.Categorize(merchantCandidate("009844_SK텔레콤")))
}

func TestIssuerHeuristicsSpecificBeforeGeneric(t *testing.T) {
	c := New(nil, testCategories, nil, &logging.MockLogger{})

	// 이마트24 is a convenience store, 이마트 a grocery chain; the longer
	// keyword is listed first. Without a 편의점 category only the grocery
	// entry can resolve.
	assert.Equal(t, "cat-grocery", c.Categorize(merchantCandidate("이마트 성수점")))
	assert.Equal(t, "cat-coffee", c.Categorize(merchantCandidate("스타벅스 강남점")))
}

func TestRuleExactMatch(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: "r1", Pattern: "우리슈퍼, 동네마트", Target: models.RuleTargetMerchant, CategoryID: "cat-grocery", Active: true},
	}
	c := New(rules, testCategories, nil, &logging.MockLogger{})

	assert.Equal(t, "cat-grocery", c.Categorize(merchantCandidate("동네마트")))
	// Spacing differences must not break the exact pass.
	assert.Equal(t, "cat-grocery", c.Categorize(merchantCandidate("동네 마트")))

	// A partial match is not exact; it only hits in the pattern tier.
	exact := newRuleExactStrategy(rules)
	_, ok := exact.Categorize(merchantCandidate("동네마트 2호점"))
	assert.False(t, ok)
}

func TestRulePatternMatch(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: "r1", Pattern: "동네마트.*점", Target: models.RuleTargetMerchant, CategoryID: "cat-grocery", Active: true},
	}
	c := New(rules, testCategories, nil, &logging.MockLogger{})
	assert.Equal(t, "cat-grocery", c.Categorize(merchantCandidate("동네마트 2호점")))
}

func TestRulePatternInvalidRegexFallsBackToSubstring(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: "r1", Pattern: "동네마트[", Target: models.RuleTargetMerchant, CategoryID: "cat-grocery", Active: true},
	}
	c := New(rules, testCategories, nil, &logging.MockLogger{})
	assert.Equal(t, "cat-grocery", c.Categorize(merchantCandidate("동네마트[ 본점")))
}

func TestRuleTargetsMemo(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: "r1", Pattern: "월세", Target: models.RuleTargetMemo, CategoryID: "cat-custom", Active: true},
	}
	c := New(rules, testCategories, nil, &logging.MockLogger{})

	got := c.Categorize(models.TransactionCandidate{Merchant: "부동산", Memo: "3월 월세"})
	assert.Equal(t, "cat-custom", got)
}

func TestRulePriorityOrdersEvaluation(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: "low", Pattern: "동네마트", Target: models.RuleTargetMerchant, CategoryID: "cat-custom", Active: true, Priority: 10},
		{ID: "high", Pattern: "동네마트", Target: models.RuleTargetMerchant, CategoryID: "cat-grocery", Active: true, Priority: 1},
	}
	c := New(rules, testCategories, nil, &logging.MockLogger{})
	assert.Equal(t, "cat-grocery", c.Categorize(merchantCandidate("동네마트")))
}

func TestInactiveRulesAreIgnored(t *testing.T) {
	rules := []models.CategoryRule{
		{ID: "r1", Pattern: "동네마트", Target: models.RuleTargetMerchant, CategoryID: "cat-grocery", Active: false},
	}
	c := New(rules, testCategories, nil, &logging.MockLogger{})
	assert.Equal(t, "", c.Categorize(merchantCandidate("동네마트")))
}

func TestNameFallback(t *testing.T) {
	c := New(nil, testCategories, nil, &logging.MockLogger{})

	// "커피" comes from splitting the 카페/커피 category name; two Hangul
	// syllables are enough.
	assert.Equal(t, "cat-coffee", c.Categorize(merchantCandidate("우리동네커피집")))
}

func TestNameFallbackSkipsExcludedCategories(t *testing.T) {
	c := New(nil, testCategories, nil, &logging.MockLogger{})
	assert.Equal(t, "", c.Categorize(merchantCandidate("계좌이체 수수료")))
}

func TestCategorizeAllPreservesOrder(t *testing.T) {
	c := New(nil, testCategories, nil, &logging.MockLogger{})
	ids := c.CategorizeAll([]models.TransactionCandidate{
		merchantCandidate("스타벅스"),
		merchantCandidate("알수없는가게"),
		merchantCandidate("이마트"),
	})

	require.Len(t, ids, 3)
	assert.Equal(t, "cat-coffee", ids[0])
	assert.Equal(t, "", ids[1])
	assert.Equal(t, "cat-grocery", ids[2])
}
