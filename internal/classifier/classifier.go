// Package classifier assigns a semantic role to each column of an extracted
// sheet. A name-based pass over multi-locale keyword tables handles labeled
// exports; a content-based statistical fallback covers synthetic or
// unrecognizable headers.
package classifier

import (
	"ledgerline/statement-ingest/internal/ingesterr"
	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/models"
	"ledgerline/statement-ingest/internal/vocab"
)

// defaultSampleRows caps how many rows the content fallback inspects.
const defaultSampleRows = 30

// matchThreshold is the minimum date/amount match ratio for a column to
// qualify during the content fallback.
const matchThreshold = 0.3

// Classifier produces a RoleMapping for one RawSheet.
type Classifier struct {
	logger     logging.Logger
	sampleRows int
}

// New creates a Classifier. sampleRows <= 0 selects the default.
func New(logger logging.Logger, sampleRows int) *Classifier {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if sampleRows <= 0 {
		sampleRows = defaultSampleRows
	}
	return &Classifier{logger: logger, sampleRows: sampleRows}
}

// Classify maps columns to roles. When the date or amount role stays
// unresolved even after the content fallback, the mapping is still returned
// together with a ClassificationGap: affected rows are dropped individually
// downstream instead of aborting the batch.
func (c *Classifier) Classify(sheet *models.RawSheet) (models.RoleMapping, error) {
	var mapping models.RoleMapping

	if !sheet.Synthetic {
		for _, header := range sheet.Headers {
			if role, ok := vocab.MatchRole(header); ok {
				mapping.Assign(header, role)
			}
		}
	}

	if !mapping.Has(models.RoleDate) || !mapping.HasAmountSource() {
		c.contentFallback(sheet, &mapping)
	}

	for _, a := range mapping.Assignments {
		c.logger.Debug("Column role assigned",
			logging.Field{Key: "column", Value: a.SourceColumn},
			logging.Field{Key: "role", Value: string(a.Role)})
	}

	if !mapping.Has(models.RoleDate) {
		return mapping, &ingesterr.ClassificationGap{MissingRole: "date", Columns: sheet.Headers}
	}
	if !mapping.HasAmountSource() {
		return mapping, &ingesterr.ClassificationGap{MissingRole: "amount", Columns: sheet.Headers}
	}
	return mapping, nil
}

// contentFallback fills the missing date/amount/merchant/memo roles from
// per-column sample statistics.
func (c *Classifier) contentFallback(sheet *models.RawSheet, mapping *models.RoleMapping) {
	assigned := make(map[string]bool)
	for _, a := range mapping.Assignments {
		assigned[a.SourceColumn] = true
	}

	stats := make([]columnStats, 0, len(sheet.Headers))
	for _, header := range sheet.Headers {
		if assigned[header] {
			continue
		}
		stats = append(stats, sampleColumn(sheet, header, c.sampleRows))
	}

	if !mapping.Has(models.RoleDate) {
		if col, ok := bestDateColumn(stats); ok {
			mapping.Assign(col, models.RoleDate)
			assigned[col] = true
		}
	}

	if !mapping.HasAmountSource() {
		c.assignAmountColumns(sheet, stats, mapping, assigned)
	}

	if !mapping.Has(models.RoleMerchant) || !mapping.Has(models.RoleMemo) {
		assignTextColumns(stats, mapping, assigned)
	}
}

// assignAmountColumns picks amount columns by match ratio. Two qualifying
// columns whose nonzero values are row-wise mutually exclusive are mapped
// as a withdrawal/deposit pair; otherwise the stronger one is the amount.
func (c *Classifier) assignAmountColumns(sheet *models.RawSheet, stats []columnStats, mapping *models.RoleMapping, assigned map[string]bool) {
	candidates := amountCandidates(stats, assigned)

	switch {
	case len(candidates) == 0:
		return
	case len(candidates) == 1:
		mapping.Assign(candidates[0].header, models.RoleAmount)
		assigned[candidates[0].header] = true
	default:
		a, b := candidates[0], candidates[1]
		if mutuallyExclusive(sheet, a.header, b.header, c.sampleRows) {
			// Without header vocabulary the pair is ordered positionally:
			// bank exports list the withdrawal column first.
			first, second := a, b
			if columnIndex(sheet.Headers, b.header) < columnIndex(sheet.Headers, a.header) {
				first, second = b, a
			}
			mapping.Assign(first.header, models.RoleWithdrawal)
			mapping.Assign(second.header, models.RoleDeposit)
			assigned[first.header] = true
			assigned[second.header] = true
			c.logger.Debug("Mapped mutually exclusive amount pair",
				logging.Field{Key: "withdrawal", Value: first.header},
				logging.Field{Key: "deposit", Value: second.header})
			return
		}
		best := a
		if b.amountRatio > a.amountRatio {
			best = b
		}
		mapping.Assign(best.header, models.RoleAmount)
		assigned[best.header] = true
	}
}

// assignTextColumns ranks the remaining free-text columns by script signal,
// then average length, then ratio, and maps them to merchant and memo.
func assignTextColumns(stats []columnStats, mapping *models.RoleMapping, assigned map[string]bool) {
	var texts []columnStats
	for _, s := range stats {
		if assigned[s.header] {
			continue
		}
		if s.textRatio >= matchThreshold {
			texts = append(texts, s)
		}
	}
	sortTextColumns(texts)

	for _, s := range texts {
		switch {
		case !mapping.Has(models.RoleMerchant):
			mapping.Assign(s.header, models.RoleMerchant)
			assigned[s.header] = true
		case !mapping.Has(models.RoleMemo):
			mapping.Assign(s.header, models.RoleMemo)
			assigned[s.header] = true
		default:
			return
		}
	}
}

func columnIndex(headers []string, header string) int {
	for i, h := range headers {
		if h == header {
			return i
		}
	}
	return len(headers)
}
