// Package pipeline wires the ingestion stages together: extraction,
// classification, normalization, deduplication, categorization and
// persistence. Stages run strictly in that order and communicate only
// through their declared outputs; no stage reaches back upstream.
package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"ledgerline/statement-ingest/internal/categorizer"
	"ledgerline/statement-ingest/internal/classifier"
	"ledgerline/statement-ingest/internal/dedup"
	"ledgerline/statement-ingest/internal/extractor"
	"ledgerline/statement-ingest/internal/ingesterr"
	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/models"
	"ledgerline/statement-ingest/internal/normalizer"
	"ledgerline/statement-ingest/internal/store"
)

// Options tunes one pipeline instance.
type Options struct {
	// StrictDedup keys intra-batch duplicates on (date, time, amount) only.
	StrictDedup bool
	// FuzzyThreshold is the minimum score reported against persisted
	// records; <= 0 selects the default.
	FuzzyThreshold float64
	// SampleRows caps the classifier's content-fallback sample; <= 0
	// selects the default.
	SampleRows int
}

// Pipeline runs complete imports against one storage backend.
type Pipeline struct {
	extractor    *extractor.Extractor
	classifier   *classifier.Classifier
	deduplicator *dedup.Deduplicator
	store        store.Store
	logger       logging.Logger
	opts         Options
}

// New assembles a Pipeline.
func New(st store.Store, logger logging.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{
		extractor:    extractor.New(logger),
		classifier:   classifier.New(logger, opts.SampleRows),
		deduplicator: dedup.New(logger),
		store:        st,
		logger:       logger,
		opts:         opts,
	}
}

// ImportFile reads and imports one statement export from disk.
func (p *Pipeline) ImportFile(path string) (*models.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ingesterr.ExtractionError{Filename: filepath.Base(path), Reason: err.Error()}
	}
	return p.Import(data, filepath.Base(path))
}

// Import runs the full pipeline over one export buffer. The returned result
// is never persisted here; call Persist with the candidates the user kept.
func (p *Pipeline) Import(data []byte, filename string) (*models.ImportResult, error) {
	sheet, err := p.extractor.Extract(data, filename)
	if err != nil {
		return nil, err
	}

	mapping, err := p.classifier.Classify(sheet)
	if err != nil {
		var gap *ingesterr.ClassificationGap
		if !errors.As(err, &gap) {
			return nil, err
		}
		// Not fatal: unmapped rows are dropped one by one below.
		p.logger.Warn("Classification incomplete, rows may be dropped",
			logging.Field{Key: "missing", Value: gap.MissingRole})
	}

	sourceTag := ""
	if sheet.Issuer != nil {
		sourceTag = sheet.Issuer.Name
	} else {
		sourceTag = models.GuessIssuerFromFilename(filename)
	}

	norm := normalizer.New(p.logger, sheet.Issuer, sourceTag)
	candidates := normalizeRows(norm, sheet.Rows, mapping)

	result := &models.ImportResult{
		TotalRowsSeen: len(sheet.Rows),
		RowsRejected:  len(sheet.Rows) - len(candidates),
	}

	batch := p.deduplicator.Deduplicate(candidates, p.opts.StrictDedup)
	result.DuplicatesRemoved = batch.DuplicatesRemoved
	result.Candidates = batch.Unique

	if err := p.compareAgainstStore(result); err != nil {
		return nil, err
	}
	if err := p.categorize(result, sheet.Issuer); err != nil {
		return nil, err
	}

	p.logger.Info("Import complete",
		logging.Field{Key: "file", Value: filename},
		logging.Field{Key: "candidates", Value: len(result.Candidates)},
		logging.Field{Key: "rejected", Value: result.RowsRejected},
		logging.Field{Key: "batch_duplicates", Value: result.DuplicatesRemoved},
		logging.Field{Key: "fuzzy_duplicates", Value: len(result.Duplicates)})
	return result, nil
}

// compareAgainstStore loads the persisted records overlapping the batch's
// date window and attaches advisory duplicate pairs to the result.
func (p *Pipeline) compareAgainstStore(result *models.ImportResult) error {
	if len(result.Candidates) == 0 {
		return nil
	}

	from, to := dateWindow(result.Candidates)
	existing, err := p.store.GetTransactions(from, to)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}

	result.Duplicates = p.deduplicator.FindDuplicates(result.Candidates, existing, p.opts.FuzzyThreshold)
	return nil
}

func (p *Pipeline) categorize(result *models.ImportResult, issuer *models.IssuerProfile) error {
	rules, err := p.store.GetRules(false)
	if err != nil {
		return err
	}
	cats, err := p.store.GetCategories()
	if err != nil {
		return err
	}

	cat := categorizer.New(rules, cats, issuer, p.logger)
	ids := cat.CategorizeAll(result.Candidates)
	for i := range result.Candidates {
		result.Candidates[i].CategoryID = ids[i]
	}
	return nil
}

// Persist stores the candidates one at a time. On failure the error reports
// how many records went through; the caller keeps the full candidate list so
// the import can be retried without re-parsing the source.
func (p *Pipeline) Persist(candidates []models.TransactionCandidate) error {
	for i, c := range candidates {
		if _, err := p.store.AddTransaction(c); err != nil {
			return &ingesterr.PersistenceError{Persisted: i, Err: err}
		}
	}
	if len(candidates) > 0 {
		p.logger.Info("Persisted transactions",
			logging.Field{Key: "count", Value: len(candidates)})
	}
	return nil
}

// dateWindow returns the batch's date range widened by one day on each
// side, since the fuzzy comparison tolerates adjacent-day matches.
func dateWindow(candidates []models.TransactionCandidate) (string, string) {
	min, max := candidates[0].Date, candidates[0].Date
	for _, c := range candidates[1:] {
		if c.Date < min {
			min = c.Date
		}
		if c.Date > max {
			max = c.Date
		}
	}
	if t, err := time.Parse("2006-01-02", min); err == nil {
		min = t.AddDate(0, 0, -1).Format("2006-01-02")
	}
	if t, err := time.Parse("2006-01-02", max); err == nil {
		max = t.AddDate(0, 0, 1).Format("2006-01-02")
	}
	return min, max
}
