// Package dedup removes exact duplicates inside one import batch and
// scores candidates against already-persisted records. Intra-batch
// deduplication filters; the fuzzy comparison is advisory only and never
// removes anything.
package dedup

import (
	"sort"
	"strings"
	"time"

	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/models"
	"ledgerline/statement-ingest/internal/textutils"
)

// DefaultFuzzyThreshold is the minimum score reported as a likely
// duplicate of a persisted record.
const DefaultFuzzyThreshold = 0.95

// BatchResult is the outcome of intra-batch deduplication.
type BatchResult struct {
	Unique            []models.TransactionCandidate
	DuplicatesRemoved int
}

// Deduplicator handles both deduplication contracts for one import.
type Deduplicator struct {
	logger logging.Logger
}

// New creates a Deduplicator.
func New(logger logging.Logger) *Deduplicator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Deduplicator{logger: logger}
}

// Deduplicate removes exact duplicates within the batch, keeping the first
// occurrence per key. Strict mode keys on (date, time, amount) only; the
// default mode additionally folds in the merchant (or memo), so two
// same-day purchases of the same amount at different merchants survive.
func (d *Deduplicator) Deduplicate(candidates []models.TransactionCandidate, strict bool) BatchResult {
	seen := make(map[string]bool, len(candidates))
	result := BatchResult{Unique: make([]models.TransactionCandidate, 0, len(candidates))}

	for _, c := range candidates {
		key := batchKey(c, strict)
		if seen[key] {
			result.DuplicatesRemoved++
			continue
		}
		seen[key] = true
		result.Unique = append(result.Unique, c)
	}

	if result.DuplicatesRemoved > 0 {
		d.logger.Info("Removed intra-batch duplicates",
			logging.Field{Key: "removed", Value: result.DuplicatesRemoved},
			logging.Field{Key: "strict", Value: strict})
	}
	return result
}

func batchKey(c models.TransactionCandidate, strict bool) string {
	parts := []string{c.Date, c.Time, c.Amount.String()}
	if !strict {
		name := c.Merchant
		if name == "" {
			name = c.Memo
		}
		parts = append(parts, textutils.FoldTight(name))
	}
	return strings.Join(parts, "|")
}

// FindDuplicates scores every candidate against every persisted record and
// reports pairs at or above the threshold, sorted descending by score.
func (d *Deduplicator) FindDuplicates(candidates []models.TransactionCandidate, existing []models.PersistedTransaction, threshold float64) []models.DuplicateCandidate {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}

	var duplicates []models.DuplicateCandidate
	for _, c := range candidates {
		for _, p := range existing {
			score := Score(c, p)
			if score >= threshold {
				duplicates = append(duplicates, models.DuplicateCandidate{
					Candidate: c,
					Existing:  p,
					Score:     score,
				})
			}
		}
	}

	sort.SliceStable(duplicates, func(i, j int) bool {
		return duplicates[i].Score > duplicates[j].Score
	})
	return duplicates
}

// Score rates how likely a candidate duplicates a persisted record, 0..1.
// An amount mismatch is an immediate 0. Temporal proximity then gates the
// comparison: records outside the allowed window score 0 regardless of
// name similarity.
func Score(c models.TransactionCandidate, p models.PersistedTransaction) float64 {
	if !c.Amount.Equal(p.Amount) {
		return 0
	}

	timeScore, ok := temporalScore(c, p)
	if !ok {
		return 0
	}

	// Fixed bonus once the amount is confirmed equal.
	score := timeScore + 0.3

	sim := nameSimilarity(c, p)
	if sim >= 0.9 {
		return 1.0
	}
	score += 0.2 * sim
	if score > 1 {
		score = 1
	}
	return score
}

// temporalScore rates date/time proximity. When both records carry a time,
// minutes decide; when neither does, calendar-day distance decides. Mixed
// precision falls back to the calendar-day comparison.
func temporalScore(c models.TransactionCandidate, p models.PersistedTransaction) (float64, bool) {
	if c.HasTime() && p.HasTime() {
		ct, err1 := c.Datetime()
		pt, err2 := parseDatetime(p.Date, p.Time)
		if err1 != nil || err2 != nil {
			return 0, false
		}
		diff := ct.Sub(pt)
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff <= 5*time.Minute:
			return 0.5, true
		case diff <= 60*time.Minute:
			return 0.3, true
		default:
			return 0, false
		}
	}

	cd, err1 := time.Parse("2006-01-02", c.Date)
	pd, err2 := time.Parse("2006-01-02", p.Date)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	days := int(cd.Sub(pd).Hours() / 24)
	if days < 0 {
		days = -days
	}
	switch days {
	case 0:
		return 0.4, true
	case 1:
		return 0.2, true
	default:
		return 0, false
	}
}

// nameSimilarity compares merchants when both records carry one, otherwise
// memos.
func nameSimilarity(c models.TransactionCandidate, p models.PersistedTransaction) float64 {
	if c.Merchant != "" && p.Merchant != "" {
		return textutils.Similarity(c.Merchant, p.Merchant)
	}
	return textutils.Similarity(c.Memo, p.Memo)
}

func parseDatetime(date, clock string) (time.Time, error) {
	if clock != "" {
		return time.Parse("2006-01-02 15:04:05", date+" "+clock)
	}
	return time.Parse("2006-01-02", date)
}
