package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/models"
)

func newTempStore(t *testing.T) *YAMLStore {
	t.Helper()
	dir := t.TempDir()
	return NewYAMLStore(
		filepath.Join(dir, "categories.yaml"),
		filepath.Join(dir, "rules.yaml"),
		filepath.Join(dir, "transactions.yaml"),
		&logging.MockLogger{},
	)
}

func TestMissingFilesMeanEmptyData(t *testing.T) {
	s := newTempStore(t)

	categories, err := s.GetCategories()
	require.NoError(t, err)
	assert.Empty(t, categories)

	rules, err := s.GetRules(false)
	require.NoError(t, err)
	assert.Empty(t, rules)

	transactions, err := s.GetTransactions("", "")
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestGetCategoriesAndRulesFromYAML(t *testing.T) {
	dir := t.TempDir()
	categoriesFile := filepath.Join(dir, "categories.yaml")
	rulesFile := filepath.Join(dir, "rules.yaml")

	require.NoError(t, os.WriteFile(categoriesFile, []byte(`categories:
  - id: cat-coffee
    name: 카페
  - id: cat-transfer
    name: 이체
    exclude_from_stats: true
`), 0o644))
	require.NoError(t, os.WriteFile(rulesFile, []byte(`rules:
  - id: r1
    pattern: 스타벅스
    target: merchant
    category_id: cat-coffee
    active: true
    priority: 1
  - id: r2
    pattern: 이디야
    target: merchant
    category_id: cat-coffee
    active: false
`), 0o644))

	s := NewYAMLStore(categoriesFile, rulesFile, filepath.Join(dir, "transactions.yaml"), &logging.MockLogger{})

	categories, err := s.GetCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "카페", categories[0].Name)
	assert.True(t, categories[1].ExcludeFromStats)

	all, err := s.GetRules(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := s.GetRules(true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "r1", active[0].ID)
}

func TestAddTransactionRoundTrip(t *testing.T) {
	s := newTempStore(t)

	id, err := s.AddTransaction(models.TransactionCandidate{
		Date:      "2024-03-05",
		Time:      "12:30:00",
		Amount:    decimal.RequireFromString("10000"),
		Direction: models.DirectionExpense,
		Merchant:  "스타벅스",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	transactions, err := s.GetTransactions("", "")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, id, transactions[0].ID)
	assert.Equal(t, "2024-03-05", transactions[0].Date)
	assert.True(t, transactions[0].Amount.Equal(decimal.RequireFromString("10000")))
	assert.Equal(t, models.DirectionExpense, transactions[0].Direction)
}

func TestGetTransactionsDateWindow(t *testing.T) {
	s := newTempStore(t)
	for _, date := range []string{"2024-03-01", "2024-03-05", "2024-03-10"} {
		_, err := s.AddTransaction(models.TransactionCandidate{
			Date:      date,
			Amount:    decimal.RequireFromString("1000"),
			Direction: models.DirectionExpense,
		})
		require.NoError(t, err)
	}

	window, err := s.GetTransactions("2024-03-02", "2024-03-09")
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "2024-03-05", window[0].Date)

	open, err := s.GetTransactions("2024-03-05", "")
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestMockStoreInjectedFailure(t *testing.T) {
	m := NewMockStore()
	m.FailAddAfter = 2

	_, err := m.AddTransaction(models.TransactionCandidate{Date: "2024-03-05"})
	require.NoError(t, err)
	_, err = m.AddTransaction(models.TransactionCandidate{Date: "2024-03-06"})
	require.Error(t, err)
	assert.Len(t, m.Transactions, 1)
}
