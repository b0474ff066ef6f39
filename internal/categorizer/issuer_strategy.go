package categorizer

import (
	"regexp"
	"strings"

	"ledgerline/statement-ingest/internal/models"
	"ledgerline/statement-ingest/internal/textutils"
)

// merchantHeuristic maps a merchant keyword to a category name. The table
// is ordered: more specific entries come before generic ones and the first
// hit wins.
type merchantHeuristic struct {
	keyword  string
	category string
}

// merchantHeuristics is the fixed issuer-tier table covering the merchant
// chains that dominate Korean card statements.
var merchantHeuristics = []merchantHeuristic{
	// Groceries
	{"이마트24", "편의점"}, // before the 이마트 grocery entry
	{"이마트", "식료품"},
	{"홈플러스", "식료품"},
	{"롯데마트", "식료품"},
	{"하나로마트", "식료품"},

	// Telecom
	{"sk텔레콤", "통신"},
	{"skt", "통신"},
	{"lg유플러스", "통신"},
	{"lgu+", "통신"},
	{"kt ", "통신"},

	// Coffee chains
	{"스타벅스", "카페"},
	{"이디야", "카페"},
	{"투썸플레이스", "카페"},
	{"메가커피", "카페"},
	{"빽다방", "카페"},
	{"커피빈", "카페"},

	// Convenience stores
	{"gs25", "편의점"},
	{"cu ", "편의점"},
	{"세븐일레븐", "편의점"},
	{"미니스톱", "편의점"},

	// Fast food
	{"맥도날드", "패스트푸드"},
	{"버거킹", "패스트푸드"},
	{"롯데리아", "패스트푸드"},
	{"kfc", "패스트푸드"},
	{"맘스터치", "패스트푸드"},
	{"서브웨이", "패스트푸드"},

	// E-commerce
	{"쿠팡", "온라인쇼핑"},
	{"지마켓", "온라인쇼핑"},
	{"11번가", "온라인쇼핑"},
	{"옥션", "온라인쇼핑"},
	{"위메프", "온라인쇼핑"},
	{"티몬", "온라인쇼핑"},

	// Subscriptions
	{"넷플릭스", "구독"},
	{"유튜브", "구독"},
	{"멜론", "구독"},
	{"왓챠", "구독"},
	{"웨이브", "구독"},
	{"디즈니", "구독"},

	// Medical
	{"약국", "의료"},
	{"병원", "의료"},
	{"의원", "의료"},
	{"한의원", "의료"},
	{"치과", "의료"},

	// Fuel
	{"주유소", "주유"},
	{"sk에너지", "주유"},
	{"gs칼텍스", "주유"},
	{"s-oil", "주유"},
	{"현대오일뱅크", "주유"},

	// Transit
	{"지하철", "교통"},
	{"버스", "교통"},
	{"택시", "교통"},
	{"코레일", "교통"},
	{"카카오t", "교통"},
}

// merchantPrefixPattern matches the leading numeric approval block some
// exports prepend to merchant names ("009844_SK텔레콤").
var merchantPrefixPattern = regexp.MustCompile(`^\d+[_\-]`)

// issuerStrategy is the first categorization tier. It normalizes the
// merchant per issuer convention and tests the fixed heuristic table,
// resolving category names against the run's category snapshot.
type issuerStrategy struct {
	issuer     *models.IssuerProfile
	categories []models.Category
}

func newIssuerStrategy(issuer *models.IssuerProfile, categories []models.Category) *issuerStrategy {
	return &issuerStrategy{issuer: issuer, categories: categories}
}

func (s *issuerStrategy) Name() string { return "issuer-heuristics" }

func (s *issuerStrategy) Categorize(candidate models.TransactionCandidate) (string, bool) {
	merchant := s.normalizeMerchant(candidate.Merchant)
	if merchant == "" {
		return "", false
	}

	folded := textutils.Fold(merchant)
	for _, h := range merchantHeuristics {
		if !strings.Contains(folded, h.keyword) {
			continue
		}
		if id, ok := s.categoryByName(h.category); ok {
			return id, true
		}
	}
	return "", false
}

// normalizeMerchant strips the numeric prefix block for issuers flagged
// with that export convention.
func (s *issuerStrategy) normalizeMerchant(merchant string) string {
	merchant = strings.TrimSpace(merchant)
	if s.issuer != nil && s.issuer.StripMerchantPrefix {
		merchant = merchantPrefixPattern.ReplaceAllString(merchant, "")
	}
	return merchant
}

// categoryByName resolves a heuristic category name to an ID, preferring
// exact folded equality over substring containment.
func (s *issuerStrategy) categoryByName(name string) (string, bool) {
	folded := textutils.Fold(name)
	for _, c := range s.categories {
		if textutils.Fold(c.Name) == folded {
			return c.ID, true
		}
	}
	for _, c := range s.categories {
		if strings.Contains(textutils.Fold(c.Name), folded) {
			return c.ID, true
		}
	}
	return "", false
}
