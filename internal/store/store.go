// Package store provides the persistence boundary of the pipeline. The
// pipeline only talks to the Store interface; the YAML-file implementation
// here is the default backend and keeps reference data editable by hand.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/models"
)

// Store is the persistence contract. Reference data (categories, rules) is
// read-only for the pipeline; transactions are appended one at a time.
type Store interface {
	GetCategories() ([]models.Category, error)
	GetRules(activeOnly bool) ([]models.CategoryRule, error)
	// GetTransactions returns persisted records whose date falls inside
	// [from, to]. Empty bounds are open-ended.
	GetTransactions(from, to string) ([]models.PersistedTransaction, error)
	// AddTransaction persists one candidate and returns its assigned ID.
	AddTransaction(candidate models.TransactionCandidate) (string, error)
}

// YAMLStore persists everything as YAML documents on disk.
type YAMLStore struct {
	categoriesFile   string
	rulesFile        string
	transactionsFile string
	logger           logging.Logger

	mu sync.Mutex
}

// NewYAMLStore creates a store over the three data files. Files that do not
// exist yet are treated as empty.
func NewYAMLStore(categoriesFile, rulesFile, transactionsFile string, logger logging.Logger) *YAMLStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &YAMLStore{
		categoriesFile:   categoriesFile,
		rulesFile:        rulesFile,
		transactionsFile: transactionsFile,
		logger:           logger,
	}
}

type categoriesDoc struct {
	Categories []models.Category `yaml:"categories"`
}

type rulesDoc struct {
	Rules []models.CategoryRule `yaml:"rules"`
}

// transactionRecord is the on-disk shape of one transaction. The amount is
// kept as a string because yaml.v3 cannot decode into decimal.Decimal.
type transactionRecord struct {
	ID         string `yaml:"id"`
	Date       string `yaml:"date"`
	Time       string `yaml:"time,omitempty"`
	Amount     string `yaml:"amount"`
	Direction  string `yaml:"direction"`
	Merchant   string `yaml:"merchant,omitempty"`
	Memo       string `yaml:"memo,omitempty"`
	CategoryID string `yaml:"category_id,omitempty"`
}

type transactionsDoc struct {
	Transactions []transactionRecord `yaml:"transactions"`
}

func (r transactionRecord) toModel() (models.PersistedTransaction, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return models.PersistedTransaction{}, fmt.Errorf("transaction %s has invalid amount %q: %w", r.ID, r.Amount, err)
	}
	return models.PersistedTransaction{
		ID:         r.ID,
		Date:       r.Date,
		Time:       r.Time,
		Amount:     amount,
		Direction:  models.Direction(r.Direction),
		Merchant:   r.Merchant,
		Memo:       r.Memo,
		CategoryID: r.CategoryID,
	}, nil
}

// GetCategories loads the category list.
func (s *YAMLStore) GetCategories() ([]models.Category, error) {
	var doc categoriesDoc
	if err := s.readDoc(s.categoriesFile, &doc); err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// GetRules loads the rule list, optionally filtering to active rules.
func (s *YAMLStore) GetRules(activeOnly bool) ([]models.CategoryRule, error) {
	var doc rulesDoc
	if err := s.readDoc(s.rulesFile, &doc); err != nil {
		return nil, err
	}
	if !activeOnly {
		return doc.Rules, nil
	}
	active := make([]models.CategoryRule, 0, len(doc.Rules))
	for _, r := range doc.Rules {
		if r.Active {
			active = append(active, r)
		}
	}
	return active, nil
}

// GetTransactions loads persisted transactions inside the date window.
// Dates are ISO strings, so lexical comparison is chronological.
func (s *YAMLStore) GetTransactions(from, to string) ([]models.PersistedTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc transactionsDoc
	if err := s.readDoc(s.transactionsFile, &doc); err != nil {
		return nil, err
	}

	matched := make([]models.PersistedTransaction, 0, len(doc.Transactions))
	for _, r := range doc.Transactions {
		if from != "" && r.Date < from {
			continue
		}
		if to != "" && r.Date > to {
			continue
		}
		t, err := r.toModel()
		if err != nil {
			return nil, err
		}
		matched = append(matched, t)
	}
	return matched, nil
}

// AddTransaction appends one candidate to the transactions file.
func (s *YAMLStore) AddTransaction(candidate models.TransactionCandidate) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc transactionsDoc
	if err := s.readDoc(s.transactionsFile, &doc); err != nil {
		return "", err
	}

	id := uuid.New().String()
	doc.Transactions = append(doc.Transactions, transactionRecord{
		ID:         id,
		Date:       candidate.Date,
		Time:       candidate.Time,
		Amount:     candidate.Amount.String(),
		Direction:  string(candidate.Direction),
		Merchant:   candidate.Merchant,
		Memo:       candidate.Memo,
		CategoryID: candidate.CategoryID,
	})

	if err := s.writeDoc(s.transactionsFile, &doc); err != nil {
		return "", err
	}

	s.logger.Debug("Persisted transaction",
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "date", Value: candidate.Date})
	return id, nil
}

func (s *YAMLStore) readDoc(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (s *YAMLStore) writeDoc(path string, doc interface{}) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
