package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchMarker(t *testing.T) {
	tests := []struct {
		name   string
		cell   string
		issuer string
	}{
		{"shinhan usage list", "신용카드 이용내역", "shinhancard"},
		{"samsung detailed list", "이용일시별 상세내역", "samsungcard"},
		{"kb lookup", "거래내역조회 결과", "kbbank"},
		{"woori history", "입출금내역", "wooribank"},
		{"no marker", "2024년 3월 명세서", ""},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profile := MatchMarker(tc.cell)
			if tc.issuer == "" {
				assert.Nil(t, profile)
				return
			}
			require.NotNil(t, profile)
			assert.Equal(t, tc.issuer, profile.Name)
		})
	}
}

func TestGuessIssuerFromFilename(t *testing.T) {
	assert.Equal(t, "shinhancard", GuessIssuerFromFilename("Shinhan_2024_03.xlsx"))
	assert.Equal(t, "samsungcard", GuessIssuerFromFilename("삼성카드_이용내역.xlsx"))
	assert.Equal(t, "kbbank", GuessIssuerFromFilename("kb_export.csv"))
	assert.Equal(t, "", GuessIssuerFromFilename("statement.csv"))
}

func TestRoleMappingAssignFirstWins(t *testing.T) {
	var m RoleMapping
	m.Assign("거래일자", RoleDate)
	m.Assign("승인일자", RoleDate)

	assert.Equal(t, "거래일자", m.Column(RoleDate))
	assert.Len(t, m.Assignments, 1)
}

func TestRoleMappingHasAmountSource(t *testing.T) {
	var m RoleMapping
	assert.False(t, m.HasAmountSource())

	m.Assign("출금(원)", RoleWithdrawal)
	assert.True(t, m.HasAmountSource())

	var m2 RoleMapping
	m2.Assign("이용금액", RoleAmount)
	assert.True(t, m2.HasAmountSource())
}

func TestCandidateDatetime(t *testing.T) {
	c := TransactionCandidate{Date: "2024-03-05", Time: "14:23:00"}
	dt, err := c.Datetime()
	require.NoError(t, err)
	assert.Equal(t, 14, dt.Hour())

	c.Time = ""
	assert.False(t, c.HasTime())
	dt, err = c.Datetime()
	require.NoError(t, err)
	assert.Equal(t, 0, dt.Hour())
}
