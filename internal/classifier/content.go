package classifier

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"ledgerline/statement-ingest/internal/amountutils"
	"ledgerline/statement-ingest/internal/dateutils"
	"ledgerline/statement-ingest/internal/models"
)

// columnStats aggregates sample statistics for one column during the
// content-based fallback.
type columnStats struct {
	header      string
	sampled     int // non-empty cells inspected
	dateRatio   float64
	amountRatio float64
	textRatio   float64
	avgLength   float64
	// scriptSignal is the fraction of sampled cells containing Hangul or
	// CJK runes; merchant columns in Korean exports carry the strongest
	// signal.
	scriptSignal float64
}

// sampleColumn inspects up to sampleRows non-empty cells of one column.
func sampleColumn(sheet *models.RawSheet, header string, sampleRows int) columnStats {
	stats := columnStats{header: header}

	var dates, amounts, texts, scripted int
	var totalLen int
	for _, row := range sheet.Rows {
		if stats.sampled >= sampleRows {
			break
		}
		cell := row.Cell(header)
		if cell == "" {
			continue
		}
		stats.sampled++

		if dateutils.LooksLikeDate(cell) {
			dates++
		}
		if amountutils.LooksLikeAmount(cell) {
			amounts++
		}
		if isFreeText(cell) {
			texts++
			totalLen += utf8.RuneCountInString(cell)
			if hasEastAsianScript(cell) {
				scripted++
			}
		}
	}

	if stats.sampled == 0 {
		return stats
	}
	n := float64(stats.sampled)
	stats.dateRatio = float64(dates) / n
	stats.amountRatio = float64(amounts) / n
	stats.textRatio = float64(texts) / n
	if texts > 0 {
		stats.avgLength = float64(totalLen) / float64(texts)
	}
	stats.scriptSignal = float64(scripted) / n
	return stats
}

// isFreeText is true for cells carrying letters and at least two runes.
func isFreeText(cell string) bool {
	if utf8.RuneCountInString(cell) < 2 {
		return false
	}
	for _, r := range cell {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// hasEastAsianScript reports whether a cell carries Hangul or CJK runes.
func hasEastAsianScript(cell string) bool {
	for _, r := range cell {
		if unicode.Is(unicode.Hangul, r) || unicode.Is(unicode.Han, r) ||
			unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
			return true
		}
	}
	return false
}

// bestDateColumn returns the column with the highest qualifying date ratio.
func bestDateColumn(stats []columnStats) (string, bool) {
	best := -1
	for i, s := range stats {
		if s.dateRatio < matchThreshold {
			continue
		}
		if best == -1 || s.dateRatio > stats[best].dateRatio {
			best = i
		}
	}
	if best == -1 {
		return "", false
	}
	return stats[best].header, true
}

// amountCandidates returns unassigned columns whose amount ratio qualifies,
// strongest first, capped at two.
func amountCandidates(stats []columnStats, assigned map[string]bool) []columnStats {
	var candidates []columnStats
	for _, s := range stats {
		if assigned[s.header] || s.amountRatio < matchThreshold {
			continue
		}
		candidates = append(candidates, s)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].amountRatio > candidates[j].amountRatio
	})
	if len(candidates) > 2 {
		candidates = candidates[:2]
	}
	return candidates
}

// mutuallyExclusive tests whether two columns' nonzero values behave like a
// withdrawal/deposit pair: at least five rows where exactly one is nonzero,
// and more than double the rows where both are.
func mutuallyExclusive(sheet *models.RawSheet, colA, colB string, sampleRows int) bool {
	exclusive, both, inspected := 0, 0, 0
	for _, row := range sheet.Rows {
		if inspected >= sampleRows {
			break
		}
		a := nonZeroAmount(row.Cell(colA))
		b := nonZeroAmount(row.Cell(colB))
		if !a && !b {
			continue
		}
		inspected++
		if a && b {
			both++
		} else {
			exclusive++
		}
	}
	return exclusive >= 5 && exclusive > 2*both
}

func nonZeroAmount(cell string) bool {
	amount, ok := amountutils.Parse(cell)
	return ok && !amount.IsZero()
}

// sortTextColumns orders free-text columns by script signal, then average
// length, then text ratio, all descending.
func sortTextColumns(texts []columnStats) {
	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].scriptSignal != texts[j].scriptSignal {
			return texts[i].scriptSignal > texts[j].scriptSignal
		}
		if texts[i].avgLength != texts[j].avgLength {
			return texts[i].avgLength > texts[j].avgLength
		}
		return texts[i].textRatio > texts[j].textRatio
	})
}
