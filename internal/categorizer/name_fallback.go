package categorizer

import (
	"strings"
	"unicode"

	"ledgerline/statement-ingest/internal/models"
	"ledgerline/statement-ingest/internal/textutils"
)

// nameFallbackStrategy is the last tier. It splits each category name on
// "/" and matches the parts as substrings of the candidate's merchant or
// memo. Categories excluded from statistics never match.
type nameFallbackStrategy struct {
	categories []models.Category
}

func newNameFallbackStrategy(categories []models.Category) *nameFallbackStrategy {
	return &nameFallbackStrategy{categories: categories}
}

func (s *nameFallbackStrategy) Name() string { return "category-name" }

func (s *nameFallbackStrategy) Categorize(candidate models.TransactionCandidate) (string, bool) {
	merchant := textutils.Fold(candidate.Merchant)
	memo := textutils.Fold(candidate.Memo)
	if merchant == "" && memo == "" {
		return "", false
	}

	for _, c := range s.categories {
		if c.ExcludeFromStats {
			continue
		}
		for _, part := range strings.Split(c.Name, "/") {
			part = textutils.Fold(part)
			if !usablePart(part) {
				continue
			}
			if strings.Contains(merchant, part) || strings.Contains(memo, part) {
				return c.ID, true
			}
		}
	}
	return "", false
}

// usablePart rejects name fragments too short to be meaningful. Hangul is
// denser than Latin script, so two syllable blocks already carry a word.
func usablePart(part string) bool {
	runes := []rune(part)
	if len(runes) >= 3 {
		return true
	}
	if len(runes) < 2 {
		return false
	}
	for _, r := range runes {
		if !unicode.Is(unicode.Hangul, r) {
			return false
		}
	}
	return true
}
