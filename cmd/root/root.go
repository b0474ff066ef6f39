// Package root contains the root command for the application.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledgerline/statement-ingest/internal/config"
	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/store"
)

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded configuration, available after PersistentPreRunE.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "statement-ingest",
		Short: "Import bank and card statement exports into a transaction store.",
		Long: `statement-ingest parses XLSX and CSV statement exports from Korean banks
and card issuers, classifies their columns, normalizes rows into
transactions, flags duplicates and assigns categories.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}

	// Shared flags for subcommands operating on the data files.
	CategoriesFile   string
	RulesFile        string
	TransactionsFile string
)

// Init registers the persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&CategoriesFile, "categories", "", "Categories YAML file (overrides config)")
	Cmd.PersistentFlags().StringVar(&RulesFile, "rules", "", "Rules YAML file (overrides config)")
	Cmd.PersistentFlags().StringVar(&TransactionsFile, "transactions", "", "Transactions YAML file (overrides config)")
}

// NewStore builds the YAML store from flags and configuration. Flags win
// over config file values.
func NewStore() *store.YAMLStore {
	categories := CategoriesFile
	if categories == "" {
		categories = Cfg.Data.CategoriesFile
	}
	rules := RulesFile
	if rules == "" {
		rules = Cfg.Data.RulesFile
	}
	transactions := TransactionsFile
	if transactions == "" {
		transactions = Cfg.Data.TransactionsFile
	}
	return store.NewYAMLStore(categories, rules, transactions, Log)
}

// Exit prints the error and terminates with a nonzero status.
func Exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
