// Package normalizer converts raw sheet rows into transaction candidates
// using the classifier's role mapping. Rows that cannot yield a valid
// candidate (no resolvable date, zero amount) are dropped silently and
// counted by the caller, never emitted with empty fields.
package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"

	"ledgerline/statement-ingest/internal/amountutils"
	"ledgerline/statement-ingest/internal/dateutils"
	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/models"
	"ledgerline/statement-ingest/internal/vocab"
)

// Normalizer builds candidates for one import run.
type Normalizer struct {
	logger    logging.Logger
	issuer    *models.IssuerProfile
	sourceTag string
}

// New creates a Normalizer. The issuer profile may be nil; sourceTag is
// attached verbatim to every candidate.
func New(logger logging.Logger, issuer *models.IssuerProfile, sourceTag string) *Normalizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Normalizer{logger: logger, issuer: issuer, sourceTag: sourceTag}
}

// rowAccum tracks the per-row values accumulated before the final amount
// and direction are resolved. It is discarded after resolution.
type rowAccum struct {
	dateCell      string
	timeCell      string
	amountRaw     decimal.Decimal
	amountPresent bool
	withdrawal    decimal.Decimal
	deposit       decimal.Decimal
	pairPresent   bool
	columnDir     models.Direction
	typeHint      string
	merchant      string
	memo          string
}

// Normalize converts one row. The boolean is false when the row was
// dropped.
func (n *Normalizer) Normalize(row models.Row, mapping models.RoleMapping) (models.TransactionCandidate, bool) {
	acc := n.accumulate(row, mapping)

	date, ok := dateutils.ParseDate(acc.dateCell)
	if !ok {
		n.logger.Debug("Dropping row without resolvable date",
			logging.Field{Key: "cell", Value: acc.dateCell})
		return models.TransactionCandidate{}, false
	}

	amount := n.resolveAmount(acc)
	direction := n.resolveDirection(acc, amount)
	amount = amount.Abs()
	if amount.IsZero() {
		n.logger.Debug("Dropping row with zero amount")
		return models.TransactionCandidate{}, false
	}

	candidate := models.TransactionCandidate{
		Date:        dateutils.ToISO(date),
		Amount:      amount,
		Direction:   direction,
		Merchant:    acc.merchant,
		Memo:        acc.memo,
		SourceTag:   n.sourceTag,
		OriginalRow: row,
	}
	if t, ok := dateutils.ParseTime(acc.timeCell); ok {
		candidate.Time = t
	}
	return candidate, true
}

// accumulate pulls each mapped cell into the intermediate struct.
func (n *Normalizer) accumulate(row models.Row, mapping models.RoleMapping) *rowAccum {
	acc := &rowAccum{}

	acc.dateCell = row.Cell(mapping.Column(models.RoleDate))
	acc.timeCell = row.Cell(mapping.Column(models.RoleTime))
	acc.typeHint = row.Cell(mapping.Column(models.RoleType))
	acc.merchant = strings.TrimSpace(row.Cell(mapping.Column(models.RoleMerchant)))
	acc.memo = strings.TrimSpace(row.Cell(mapping.Column(models.RoleMemo)))

	if wCol, dCol := mapping.Column(models.RoleWithdrawal), mapping.Column(models.RoleDeposit); wCol != "" || dCol != "" {
		acc.pairPresent = true
		if amount, ok := amountutils.Parse(row.Cell(wCol)); ok {
			acc.withdrawal = amount
		}
		if amount, ok := amountutils.Parse(row.Cell(dCol)); ok {
			acc.deposit = amount
		}
		// Exactly one of the pair is expected nonzero; that column also
		// supplies the direction unless a stronger signal overrides it.
		if !acc.withdrawal.IsZero() {
			acc.columnDir = models.DirectionExpense
		} else if !acc.deposit.IsZero() {
			acc.columnDir = models.DirectionIncome
		}
	} else if col := mapping.Column(models.RoleAmount); col != "" {
		if amount, ok := amountutils.Parse(row.Cell(col)); ok {
			acc.amountRaw = amount
			acc.amountPresent = true
		}
	}
	return acc
}

// resolveAmount picks the row's raw (still signed) amount.
func (n *Normalizer) resolveAmount(acc *rowAccum) decimal.Decimal {
	if acc.pairPresent {
		if !acc.withdrawal.IsZero() {
			return acc.withdrawal
		}
		return acc.deposit
	}
	return acc.amountRaw
}

// resolveDirection walks the precedence list and the first applicable
// signal wins: explicit type-hint vocabulary, the source column's own
// vocabulary, the issuer's positive-is-expense heuristic, then the raw
// sign. An explicit deposit or withdrawal hint always beats the sign
// heuristics.
func (n *Normalizer) resolveDirection(acc *rowAccum, amount decimal.Decimal) models.Direction {
	if dir, ok := vocab.DirectionHint(acc.typeHint); ok {
		return dir
	}
	if acc.columnDir != "" {
		return acc.columnDir
	}
	if n.issuer != nil && n.issuer.PositiveIsExpense && acc.amountPresent {
		if amount.IsNegative() {
			return models.DirectionIncome // refund on a card statement
		}
		return models.DirectionExpense
	}
	// Raw-sign rule and the no-signal default coincide: negative means
	// expense, and expense is also the fallback.
	return models.DirectionExpense
}
