// Package ingest implements the import command: it runs the full pipeline
// over one or more statement exports and optionally persists the result.
package ingest

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerline/statement-ingest/cmd/root"
	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/pipeline"
)

var (
	write  bool
	strict bool
)

// Cmd represents the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Import statement exports (XLSX or CSV)",
	Long: `Parse one or more statement exports, classify their columns, normalize
rows into transactions, remove intra-batch duplicates and flag likely
duplicates of already-stored records. Without --write nothing is
persisted; the run is a dry inspection.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	Cmd.Flags().BoolVarP(&write, "write", "w", false, "Persist the imported transactions")
	Cmd.Flags().BoolVar(&strict, "strict-dedup", false, "Key batch duplicates on date, time and amount only")
}

func runIngest(cmd *cobra.Command, args []string) error {
	st := root.NewStore()
	p := pipeline.New(st, root.Log, pipeline.Options{
		StrictDedup:    strict || root.Cfg.Dedup.Strict,
		FuzzyThreshold: root.Cfg.Dedup.FuzzyThreshold,
		SampleRows:     root.Cfg.Classifier.SampleRows,
	})

	for _, path := range args {
		result, err := p.ImportFile(path)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}

		fmt.Printf("%s: %d candidates (%d rows seen, %d rejected, %d batch duplicates)\n",
			path, len(result.Candidates), result.TotalRowsSeen, result.RowsRejected, result.DuplicatesRemoved)
		for _, d := range result.Duplicates {
			fmt.Printf("  possible duplicate (%.2f): %s %s %s ~ stored %s\n",
				d.Score, d.Candidate.Date, d.Candidate.Amount, d.Candidate.Merchant, d.Existing.ID)
		}

		if !write {
			continue
		}
		if err := p.Persist(result.Candidates); err != nil {
			root.Log.WithError(err).Error("Persistence failed",
				logging.Field{Key: "file", Value: path})
			return err
		}
		fmt.Printf("  persisted %d transactions\n", len(result.Candidates))
	}
	return nil
}
