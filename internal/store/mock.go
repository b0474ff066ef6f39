package store

import (
	"fmt"
	"sync"

	"ledgerline/statement-ingest/internal/models"
)

// MockStore is an in-memory Store for tests. Failures can be injected per
// method to exercise error paths.
type MockStore struct {
	mu sync.Mutex

	Categories   []models.Category
	Rules        []models.CategoryRule
	Transactions []models.PersistedTransaction

	// FailAddAfter injects a failure on the Nth AddTransaction call
	// (1-based). Zero disables injection.
	FailAddAfter int
	addCalls     int
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetCategories() ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Category(nil), m.Categories...), nil
}

func (m *MockStore) GetRules(activeOnly bool) ([]models.CategoryRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !activeOnly {
		return append([]models.CategoryRule(nil), m.Rules...), nil
	}
	var active []models.CategoryRule
	for _, r := range m.Rules {
		if r.Active {
			active = append(active, r)
		}
	}
	return active, nil
}

func (m *MockStore) GetTransactions(from, to string) ([]models.PersistedTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.PersistedTransaction
	for _, t := range m.Transactions {
		if from != "" && t.Date < from {
			continue
		}
		if to != "" && t.Date > to {
			continue
		}
		matched = append(matched, t)
	}
	return matched, nil
}

func (m *MockStore) AddTransaction(candidate models.TransactionCandidate) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.addCalls++
	if m.FailAddAfter > 0 && m.addCalls >= m.FailAddAfter {
		return "", fmt.Errorf("injected storage failure on call %d", m.addCalls)
	}

	id := fmt.Sprintf("tx-%04d", m.addCalls)
	m.Transactions = append(m.Transactions, models.PersistedTransaction{
		ID:         id,
		Date:       candidate.Date,
		Time:       candidate.Time,
		Amount:     candidate.Amount,
		Direction:  candidate.Direction,
		Merchant:   candidate.Merchant,
		Memo:       candidate.Memo,
		CategoryID: candidate.CategoryID,
	})
	return id, nil
}
