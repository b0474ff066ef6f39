// Package models defines the data types that flow through the statement
// ingestion pipeline: raw sheets produced by the extractor, role mappings
// produced by the classifier, and transaction candidates produced by the
// normalizer.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction moves money in or out.
// It is resolved independently of the raw numeric sign.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// TransactionCandidate is a normalized transaction awaiting persistence.
//
// Amount is always stored as an absolute value; Direction is resolved and
// fixed before the value is made absolute. A candidate without a resolvable
// date or with a zero amount must never exist: such rows are dropped by the
// normalizer rather than retained with empty fields.
type TransactionCandidate struct {
	Date        string          `json:"date" yaml:"date"`                     // ISO YYYY-MM-DD
	Time        string          `json:"time,omitempty" yaml:"time,omitempty"` // HH:mm:ss
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Direction   Direction       `json:"direction" yaml:"direction"`
	Merchant    string          `json:"merchant,omitempty" yaml:"merchant,omitempty"`
	Memo        string          `json:"memo,omitempty" yaml:"memo,omitempty"`
	SourceTag   string          `json:"source_tag,omitempty" yaml:"source_tag,omitempty"`
	CategoryID  string          `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	OriginalRow Row             `json:"-" yaml:"-"`
}

// HasTime reports whether the candidate carries a time-of-day component.
func (c TransactionCandidate) HasTime() bool {
	return c.Time != ""
}

// Datetime combines Date and Time into a time.Time. Candidates without a
// time component resolve to midnight.
func (c TransactionCandidate) Datetime() (time.Time, error) {
	if c.Time != "" {
		return time.Parse("2006-01-02 15:04:05", c.Date+" "+c.Time)
	}
	return time.Parse("2006-01-02", c.Date)
}

// PersistedTransaction is a transaction already stored by the storage
// collaborator, used only for fuzzy duplicate comparisons.
type PersistedTransaction struct {
	ID         string          `json:"id" yaml:"id"`
	Date       string          `json:"date" yaml:"date"`
	Time       string          `json:"time,omitempty" yaml:"time,omitempty"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Direction  Direction       `json:"direction" yaml:"direction"`
	Merchant   string          `json:"merchant,omitempty" yaml:"merchant,omitempty"`
	Memo       string          `json:"memo,omitempty" yaml:"memo,omitempty"`
	CategoryID string          `json:"category_id,omitempty" yaml:"category_id,omitempty"`
}

// HasTime reports whether the persisted record carries a time component.
func (p PersistedTransaction) HasTime() bool {
	return p.Time != ""
}

// DuplicateCandidate pairs a new candidate with a persisted record it
// closely resembles. Advisory only; the pipeline never filters on it.
type DuplicateCandidate struct {
	Candidate TransactionCandidate
	Existing  PersistedTransaction
	Score     float64
}

// ImportResult is the outcome of one pipeline run.
type ImportResult struct {
	Candidates        []TransactionCandidate
	Duplicates        []DuplicateCandidate
	TotalRowsSeen     int
	DuplicatesRemoved int
	RowsRejected      int
}
