package models

import "strings"

// IssuerProfile captures the layout quirks of one institution's statement
// export. Profiles form a small closed set selected by section-marker match
// so that extractor and categorizer behavior can be tested per profile
// instead of through inline conditionals.
type IssuerProfile struct {
	// Name is a stable tag for the institution, also used as the
	// candidate's source tag.
	Name string

	// Markers are phrases that identify the start of the transaction table
	// inside a sheet ("detailed usage list", "transaction history", ...).
	Markers []string

	// HeaderOffset is the fixed number of rows between the matched marker
	// row and the header row. Ignored when ScanForHeader is set.
	HeaderOffset int

	// ScanForHeader marks layouts too irregular for a fixed offset. The
	// extractor instead scans a bounded window below the marker for a row
	// carrying an account-number label together with date, withdrawal and
	// deposit header tokens.
	ScanForHeader bool

	// PositiveIsExpense applies to single-amount-column card statements
	// where positive values are charges and negatives are refunds.
	PositiveIsExpense bool

	// StripMerchantPrefix marks exports that prepend a numeric approval
	// block to the merchant name ("009844_SK텔레콤").
	StripMerchantPrefix bool

	// FilenameKeywords identify this issuer from the export's filename
	// alone, independent of sheet content.
	FilenameKeywords []string
}

// Profiles is the closed set of supported issuer layouts. Order matters:
// the first profile whose marker matches wins.
var Profiles = []*IssuerProfile{
	{
		Name:                "shinhancard",
		Markers:             []string{"이용내역", "상세이용내역"},
		HeaderOffset:        1,
		PositiveIsExpense:   true,
		StripMerchantPrefix: false,
		FilenameKeywords:    []string{"shinhan", "신한"},
	},
	{
		Name:                "samsungcard",
		Markers:             []string{"이용일시별 상세내역", "승인내역"},
		HeaderOffset:        3,
		PositiveIsExpense:   true,
		StripMerchantPrefix: true,
		FilenameKeywords:    []string{"samsung", "삼성"},
	},
	{
		Name:              "hyundaicard",
		Markers:           []string{"이용대금 명세", "이용상세내역"},
		HeaderOffset:      1,
		PositiveIsExpense: true,
		FilenameKeywords:  []string{"hyundai", "현대"},
	},
	{
		Name:             "kbbank",
		Markers:          []string{"거래내역조회", "입출금거래내역"},
		ScanForHeader:    true,
		FilenameKeywords: []string{"kb", "국민"},
	},
	{
		Name:             "wooribank",
		Markers:          []string{"거래내역", "입출금내역"},
		HeaderOffset:     1,
		FilenameKeywords: []string{"woori", "우리"},
	},
}

// MatchMarker returns the first profile whose marker phrase appears in the
// given cell text, or nil when none matches.
func MatchMarker(cell string) *IssuerProfile {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	for _, p := range Profiles {
		for _, m := range p.Markers {
			if strings.Contains(cell, m) {
				return p
			}
		}
	}
	return nil
}

// GuessIssuerFromFilename guesses the issuer name from an export filename.
// Used only as a source tag; it never influences column classification.
func GuessIssuerFromFilename(filename string) string {
	lower := strings.ToLower(filename)
	for _, p := range Profiles {
		for _, kw := range p.FilenameKeywords {
			if strings.Contains(lower, kw) {
				return p.Name
			}
		}
	}
	return ""
}
