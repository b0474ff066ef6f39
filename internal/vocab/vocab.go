// Package vocab holds the multi-locale keyword tables that drive header
// discovery and column role classification. Matching is data-driven: each
// role owns an ordered keyword list, so tables can be extended per locale
// without touching control flow.
package vocab

import (
	"regexp"
	"strings"

	"ledgerline/statement-ingest/internal/models"
)

// RoleKeywords binds one column role to its recognition keywords.
type RoleKeywords struct {
	Role     models.ColumnRole
	Keywords []string
}

// ColumnRoles is the ordered role table for the classifier's name-based
// pass. Withdrawal and deposit come before the generic amount role so that
// "출금(원)" headers land on the specific role.
var ColumnRoles = []RoleKeywords{
	{models.RoleWithdrawal, []string{"출금", "지출", "withdrawal", "出金", "인출"}},
	{models.RoleDeposit, []string{"입금", "수입", "deposit", "入金"}},
	{models.RoleDate, []string{
		"거래일", "이용일", "승인일", "사용일", "일자", "날짜", "거래날", "취급일",
		"date", "日付", "취인일",
	}},
	{models.RoleTime, []string{"시간", "시각", "time", "時間"}},
	{models.RoleAmount, []string{
		"금액", "이용금액", "거래금액", "승인금액", "사용금액", "amount", "金額",
	}},
	{models.RoleMerchant, []string{
		"가맹점", "이용처", "사용처", "거래처", "상호", "내용", "merchant", "store",
		"이용하신곳", "description",
	}},
	{models.RoleMemo, []string{"메모", "적요", "비고", "memo", "note", "remark"}},
	{models.RoleAccount, []string{"계좌", "account", "口座"}},
	{models.RoleType, []string{"구분", "유형", "type", "입출", "거래종류"}},
}

// AmountDenyList excludes headers that look like fees, points, balances or
// totals from the amount role even when they carry an amount keyword.
var AmountDenyList = []string{
	"수수료", "포인트", "잔액", "할인", "적립", "합계", "누계",
	"fee", "point", "balance", "total", "discount",
}

// GrandTotalKeywords terminate the data region; everything after a matching
// row is discarded.
var GrandTotalKeywords = []string{"총계", "총합계", "합계", "grand total", "합 계"}

// SubtotalKeywords mark rows dropped individually without terminating the
// data region.
var SubtotalKeywords = []string{"소계", "중간합계", "subtotal", "소 계"}

// cardOwnershipPatterns match the single-cell description rows some card
// exports insert between sections ("[본인] 1234-****-****-5678" and the
// like).
var cardOwnershipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[\[(]?(본인|가족)[\])]?`),
	regexp.MustCompile(`\d{4}[-*]+\*{2,}`),
	regexp.MustCompile(`(체크|신용)카드\s*[:：]`),
}

// NormalizeHeader strips embedded line breaks, trims and lowercases a
// header label for keyword matching.
func NormalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\n", " ")
	h = strings.ReplaceAll(h, "\r", " ")
	return strings.ToLower(strings.TrimSpace(h))
}

// MatchRole returns the role whose keyword table first matches the header,
// applying the amount deny-list. The boolean is false when nothing matched.
func MatchRole(header string) (models.ColumnRole, bool) {
	h := NormalizeHeader(header)
	if h == "" {
		return models.RoleIgnore, false
	}
	for _, rk := range ColumnRoles {
		for _, kw := range rk.Keywords {
			if !strings.Contains(h, kw) {
				continue
			}
			if rk.Role == models.RoleAmount && matchesAny(h, AmountDenyList) {
				continue
			}
			return rk.Role, true
		}
	}
	return models.RoleIgnore, false
}

// HasRoleKeyword reports whether the header carries any keyword of the
// given role, without deny-list handling. Used for header-row discovery.
func HasRoleKeyword(header string, role models.ColumnRole) bool {
	h := NormalizeHeader(header)
	for _, rk := range ColumnRoles {
		if rk.Role != role {
			continue
		}
		return matchesAny(h, rk.Keywords)
	}
	return false
}

// IsGrandTotal reports whether a cell begins a grand-total row.
func IsGrandTotal(cell string) bool {
	return matchesAny(vocabFold(cell), GrandTotalKeywords) &&
		!matchesAny(vocabFold(cell), SubtotalKeywords)
}

// IsSubtotal reports whether a cell begins a subtotal row.
func IsSubtotal(cell string) bool {
	return matchesAny(vocabFold(cell), SubtotalKeywords)
}

// IsCardOwnershipNote reports whether a lone cell is a card ownership
// description rather than data.
func IsCardOwnershipNote(cell string) bool {
	for _, p := range cardOwnershipPatterns {
		if p.MatchString(cell) {
			return true
		}
	}
	return false
}

// DirectionHint inspects free text (a type column cell) for deposit or
// withdrawal vocabulary. Deposit wins when both appear, which matches how
// exports label refund rows ("입금(취소)").
func DirectionHint(text string) (models.Direction, bool) {
	t := vocabFold(text)
	if t == "" {
		return "", false
	}
	if matchesAny(t, roleKeywords(models.RoleDeposit)) {
		return models.DirectionIncome, true
	}
	if matchesAny(t, roleKeywords(models.RoleWithdrawal)) {
		return models.DirectionExpense, true
	}
	return "", false
}

func roleKeywords(role models.ColumnRole) []string {
	for _, rk := range ColumnRoles {
		if rk.Role == role {
			return rk.Keywords
		}
	}
	return nil
}

func vocabFold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
