package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerline/statement-ingest/internal/models"
)

func TestMatchRole(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expectOk bool
		role     models.ColumnRole
	}{
		{"korean date", "거래일자", true, models.RoleDate},
		{"korean usage date", "이용일시", true, models.RoleDate},
		{"english date", "Transaction Date", true, models.RoleDate},
		{"withdrawal with unit", "출금(원)", true, models.RoleWithdrawal},
		{"deposit with unit", "입금(원)", true, models.RoleDeposit},
		{"amount", "이용금액", true, models.RoleAmount},
		{"merchant", "가맹점명", true, models.RoleMerchant},
		{"contents as merchant", "내용", true, models.RoleMerchant},
		{"memo", "적요", true, models.RoleMemo},
		{"type", "구분", true, models.RoleType},
		{"time", "거래시간", true, models.RoleTime},
		{"account", "계좌번호", true, models.RoleAccount},
		{"fee denied as amount", "수수료금액", false, models.RoleIgnore},
		{"balance denied as amount", "잔액", false, models.RoleIgnore},
		{"discount denied as amount", "할인금액", false, models.RoleIgnore},
		{"multiline header", "승인\n금액", true, models.RoleAmount},
		{"unknown", "비밀번호힌트", false, models.RoleIgnore},
		{"empty", "", false, models.RoleIgnore},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			role, ok := MatchRole(tc.header)
			assert.Equal(t, tc.expectOk, ok)
			if tc.expectOk {
				assert.Equal(t, tc.role, role)
			}
		})
	}
}

func TestWithdrawalBeatsGenericAmount(t *testing.T) {
	// A header carrying both a withdrawal keyword and an amount keyword must
	// land on the specific role.
	role, ok := MatchRole("출금금액")
	assert.True(t, ok)
	assert.Equal(t, models.RoleWithdrawal, role)
}

func TestHasRoleKeyword(t *testing.T) {
	assert.True(t, HasRoleKeyword("거래일자", models.RoleDate))
	assert.True(t, HasRoleKeyword("출금(원)", models.RoleWithdrawal))
	assert.False(t, HasRoleKeyword("거래일자", models.RoleAmount))
	// No deny-list here: header discovery wants the raw keyword signal.
	assert.True(t, HasRoleKeyword("수수료금액", models.RoleAmount))
}

func TestTotalsAndNotes(t *testing.T) {
	assert.True(t, IsGrandTotal("합계"))
	assert.True(t, IsGrandTotal("총합계"))
	assert.False(t, IsGrandTotal("소계"))
	assert.False(t, IsGrandTotal("2024-03-05"))

	assert.True(t, IsSubtotal("소계"))
	assert.True(t, IsSubtotal("Subtotal"))
	assert.False(t, IsSubtotal("합계"))

	assert.True(t, IsCardOwnershipNote("[본인] 1234-****-****-5678"))
	assert.True(t, IsCardOwnershipNote("신용카드 : 홍길동"))
	assert.False(t, IsCardOwnershipNote("스타벅스 강남점"))
}

func TestDirectionHint(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expectOk bool
		dir      models.Direction
	}{
		{"withdrawal word", "출금", true, models.DirectionExpense},
		{"deposit word", "입금", true, models.DirectionIncome},
		{"expense word", "지출", true, models.DirectionExpense},
		{"income word", "수입", true, models.DirectionIncome},
		{"refund label prefers deposit", "입금(출금취소)", true, models.DirectionIncome},
		{"no signal", "일반", false, ""},
		{"empty", "", false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir, ok := DirectionHint(tc.text)
			assert.Equal(t, tc.expectOk, ok)
			if tc.expectOk {
				assert.Equal(t, tc.dir, dir)
			}
		})
	}
}
