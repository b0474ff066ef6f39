package extractor

import (
	"strings"
	"unicode/utf8"

	"ledgerline/statement-ingest/internal/amountutils"
	"ledgerline/statement-ingest/internal/dateutils"
	"ledgerline/statement-ingest/internal/models"
	"ledgerline/statement-ingest/internal/vocab"
)

// locateHeader finds the header row index, applying discovery rules in
// priority order. The second return value marks a headerless sheet whose
// columns must be named positionally.
func locateHeader(grid sheetGrid, profile *models.IssuerProfile, markerRow int) (int, bool) {
	if profile != nil && markerRow >= 0 {
		if profile.ScanForHeader {
			if row, ok := scanForBankHeader(grid, markerRow); ok {
				return row, false
			}
		} else {
			return markerRow + profile.HeaderOffset, false
		}
	}

	if row, ok := scanForKeywordHeader(grid); ok {
		return row, false
	}

	if len(grid.rows) > 0 && looksLikeData(grid.rows[0]) {
		return 0, true
	}
	return 0, false
}

// scanForBankHeader handles irregular bank layouts: a bounded forward scan
// below the marker for a row that carries an account-number label together
// with date, withdrawal and deposit header tokens.
func scanForBankHeader(grid sheetGrid, markerRow int) (int, bool) {
	end := markerRow + headerScanWindow
	if end > len(grid.rows) {
		end = len(grid.rows)
	}
	for r := markerRow; r < end; r++ {
		var hasAccount, hasDate, hasWithdrawal, hasDeposit bool
		for _, cell := range grid.rows[r] {
			switch {
			case vocab.HasRoleKeyword(cell, models.RoleAccount):
				hasAccount = true
			case vocab.HasRoleKeyword(cell, models.RoleDate):
				hasDate = true
			}
			if vocab.HasRoleKeyword(cell, models.RoleWithdrawal) {
				hasWithdrawal = true
			}
			if vocab.HasRoleKeyword(cell, models.RoleDeposit) {
				hasDeposit = true
			}
		}
		if hasAccount && hasDate && hasWithdrawal && hasDeposit {
			return r, true
		}
	}
	return 0, false
}

// scanForKeywordHeader looks for a row pairing a date-vocabulary token with
// either an amount or merchant token; the first qualifying row wins.
func scanForKeywordHeader(grid sheetGrid) (int, bool) {
	limit := len(grid.rows)
	if limit > markerScanRows {
		limit = markerScanRows
	}
	for r := 0; r < limit; r++ {
		var hasDate, hasValue bool
		for _, cell := range grid.rows[r] {
			if vocab.HasRoleKeyword(cell, models.RoleDate) {
				hasDate = true
			}
			if vocab.HasRoleKeyword(cell, models.RoleAmount) ||
				vocab.HasRoleKeyword(cell, models.RoleWithdrawal) ||
				vocab.HasRoleKeyword(cell, models.RoleDeposit) ||
				vocab.HasRoleKeyword(cell, models.RoleMerchant) {
				hasValue = true
			}
		}
		if hasDate && hasValue {
			return r, true
		}
	}
	return 0, false
}

// looksLikeData reports whether a row already contains date- or
// amount-shaped cells, meaning the sheet has no header at all.
func looksLikeData(row []string) bool {
	for _, cell := range row {
		if dateutils.LooksLikeDate(cell) || amountutils.LooksLikeAmount(cell) {
			return true
		}
	}
	return false
}

// mergeHeaderRows appends continuation rows to the header labels while they
// still look like header fragments, and returns the resolved labels plus
// the index of the first data row.
func mergeHeaderRows(grid sheetGrid, headerRow int) ([]string, int) {
	headers := append([]string(nil), grid.rows[headerRow]...)
	dataStart := headerRow + 1

	for merged := 0; merged < maxHeaderMergeRows && dataStart < len(grid.rows); merged++ {
		row := grid.rows[dataStart]
		if !isHeaderContinuation(row) {
			break
		}
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if i >= len(headers) {
				headers = append(headers, make([]string, i-len(headers)+1)...)
			}
			if headers[i] == "" {
				headers[i] = cell
			} else {
				headers[i] = headers[i] + " " + cell
			}
		}
		dataStart++
	}
	return headers, dataStart
}

// isHeaderContinuation is true for rows of short labels with no date-shaped
// cells and fewer than 30% numeric-looking cells.
func isHeaderContinuation(row []string) bool {
	nonEmpty, numeric := 0, 0
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		nonEmpty++
		if dateutils.LooksLikeDate(cell) {
			return false
		}
		if utf8.RuneCountInString(cell) > 16 {
			return false
		}
		if amountutils.LooksLikeAmount(cell) {
			numeric++
		}
	}
	if nonEmpty == 0 {
		return false
	}
	return float64(numeric)/float64(nonEmpty) < 0.3
}

// collectDataRows gathers rows after the header, stopping at a grand-total
// row and filtering out subtotals, empties and card ownership notes.
func collectDataRows(grid sheetGrid, dataStart int, headers []string) []models.Row {
	var rows []models.Row
	for r := dataStart; r < len(grid.rows); r++ {
		raw := grid.rows[r]
		first := firstNonEmptyCell(raw)
		if first == "" {
			continue
		}
		if vocab.IsGrandTotal(first) {
			break
		}
		if vocab.IsSubtotal(first) {
			continue
		}
		if countNonEmpty(raw) == 1 && vocab.IsCardOwnershipNote(first) {
			continue
		}

		row := make(models.Row, len(headers))
		for i, h := range headers {
			if i < len(raw) {
				row[h] = strings.TrimSpace(raw[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func firstNonEmptyCell(row []string) string {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return strings.TrimSpace(cell)
		}
	}
	return ""
}

func countNonEmpty(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}
