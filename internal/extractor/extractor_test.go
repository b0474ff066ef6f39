package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerline/statement-ingest/internal/ingesterr"
	"ledgerline/statement-ingest/internal/logging"
)

func newTestExtractor() *Extractor {
	return New(&logging.MockLogger{})
}

func TestExtractBankCSV(t *testing.T) {
	csv := strings.Join([]string{
		"거래일자,출금(원),입금(원),내용",
		"2024-03-05,\"10,000\",,스타벅스 강남점",
		"2024-03-06,,\"50,000\",급여",
		"합계,\"10,000\",\"50,000\",",
	}, "\n")

	sheet, err := newTestExtractor().Extract([]byte(csv), "거래내역.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"거래일자", "출금(원)", "입금(원)", "내용"}, sheet.Headers)
	assert.False(t, sheet.Synthetic)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "2024-03-05", sheet.Rows[0].Cell("거래일자"))
	assert.Equal(t, "10,000", sheet.Rows[0].Cell("출금(원)"))
	assert.Equal(t, "스타벅스 강남점", sheet.Rows[0].Cell("내용"))
	assert.Equal(t, "급여", sheet.Rows[1].Cell("내용"))
}

func TestExtractSkipsTitleRowsBeforeHeader(t *testing.T) {
	csv := strings.Join([]string{
		"홍길동님의 3월 명세서,,,",
		",,,",
		"이용일자,이용금액,가맹점명,적요",
		"2024-03-05,\"10,000\",스타벅스,",
	}, "\n")

	sheet, err := newTestExtractor().Extract([]byte(csv), "statement.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"이용일자", "이용금액", "가맹점명", "적요"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "스타벅스", sheet.Rows[0].Cell("가맹점명"))
}

func TestExtractIssuerMarkerSelectsProfile(t *testing.T) {
	csv := strings.Join([]string{
		"신용카드 이용내역,,,",
		"이용일자,이용금액,가맹점명,적요",
		"2024-03-05,\"10,000\",스타벅스,",
	}, "\n")

	sheet, err := newTestExtractor().Extract([]byte(csv), "statement.csv")
	require.NoError(t, err)

	require.NotNil(t, sheet.Issuer)
	assert.Equal(t, "shinhancard", sheet.Issuer.Name)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "스타벅스", sheet.Rows[0].Cell("가맹점명"))
}

func TestExtractHeaderlessSheetGetsSyntheticColumns(t *testing.T) {
	csv := strings.Join([]string{
		"2024-03-05,\"10,000\",스타벅스",
		"2024-03-06,\"20,000\",쿠팡",
	}, "\n")

	sheet, err := newTestExtractor().Extract([]byte(csv), "bare.csv")
	require.NoError(t, err)

	assert.True(t, sheet.Synthetic)
	assert.Equal(t, []string{"column1", "column2", "column3"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "쿠팡", sheet.Rows[1].Cell("column3"))
}

func TestExtractFiltersNoiseRows(t *testing.T) {
	csv := strings.Join([]string{
		"거래일자,출금(원),입금(원),내용",
		"[본인] 1234-****-****-5678,,,",
		"2024-03-05,\"10,000\",,스타벅스",
		"소계,\"10,000\",,",
		"2024-03-06,,\"50,000\",급여",
		"합계,\"10,000\",\"50,000\",",
		"2024-03-07,\"99,999\",,이 행은 버려진다",
	}, "\n")

	sheet, err := newTestExtractor().Extract([]byte(csv), "noise.csv")
	require.NoError(t, err)

	// The ownership note and subtotal are dropped; the grand total stops
	// collection so the trailing row never appears.
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "스타벅스", sheet.Rows[0].Cell("내용"))
	assert.Equal(t, "급여", sheet.Rows[1].Cell("내용"))
}

func TestExtractDuplicateHeadersAreDisambiguated(t *testing.T) {
	csv := strings.Join([]string{
		"거래일자,금액,금액,내용",
		"2024-03-05,\"10,000\",\"9,000\",스타벅스",
	}, "\n")

	sheet, err := newTestExtractor().Extract([]byte(csv), "dup.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"거래일자", "금액", "금액_2", "내용"}, sheet.Headers)
	assert.Equal(t, "9,000", sheet.Rows[0].Cell("금액_2"))
}

func TestExtractEmptyInputFails(t *testing.T) {
	_, err := newTestExtractor().Extract([]byte(""), "empty.csv")
	require.Error(t, err)
	var extractionErr *ingesterr.ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestExtractHeaderOnlyFails(t *testing.T) {
	_, err := newTestExtractor().Extract([]byte("거래일자,출금(원),입금(원),내용"), "headeronly.csv")
	require.Error(t, err)
	var extractionErr *ingesterr.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Contains(t, extractionErr.Reason, "no usable data rows")
}
