// Package categorize implements the single-transaction categorization
// command, useful for testing rules without running an import.
package categorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerline/statement-ingest/cmd/root"
	"ledgerline/statement-ingest/internal/categorizer"
	"ledgerline/statement-ingest/internal/models"
)

var (
	merchant string
	memo     string
	issuer   string
)

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction against the configured rules",
	RunE:  runCategorize,
}

func init() {
	Cmd.Flags().StringVarP(&merchant, "merchant", "m", "", "Merchant name")
	Cmd.Flags().StringVar(&memo, "memo", "", "Memo text")
	Cmd.Flags().StringVar(&issuer, "issuer", "", "Issuer profile name (optional)")
	_ = Cmd.MarkFlagRequired("merchant")
}

func runCategorize(cmd *cobra.Command, args []string) error {
	st := root.NewStore()
	rules, err := st.GetRules(false)
	if err != nil {
		return err
	}
	categories, err := st.GetCategories()
	if err != nil {
		return err
	}

	var profile *models.IssuerProfile
	for _, p := range models.Profiles {
		if p.Name == issuer {
			profile = p
			break
		}
	}

	cat := categorizer.New(rules, categories, profile, root.Log)
	id := cat.Categorize(models.TransactionCandidate{Merchant: merchant, Memo: memo})
	if id == "" {
		fmt.Println("uncategorized")
		return nil
	}
	for _, c := range categories {
		if c.ID == id {
			fmt.Printf("%s (%s)\n", c.Name, c.ID)
			return nil
		}
	}
	fmt.Println(id)
	return nil
}
