// Package extractor locates the transaction table inside a raw statement
// export and resolves its headers. Statement workbooks bury the table among
// titles, card ownership notes, subtotals and grand totals; the extractor's
// job is to return just the ordered data rows underneath a resolved header.
package extractor

import (
	"fmt"
	"strings"

	"ledgerline/statement-ingest/internal/ingesterr"
	"ledgerline/statement-ingest/internal/logging"
	"ledgerline/statement-ingest/internal/models"
)

// markerScanRows bounds how deep into each sheet the section-marker scan
// looks.
const markerScanRows = 50

// headerScanWindow bounds the forward scan used by irregular issuer
// profiles.
const headerScanWindow = 15

// maxHeaderMergeRows caps how many continuation rows may be folded into the
// header labels.
const maxHeaderMergeRows = 5

// Extractor turns raw spreadsheet bytes into a RawSheet.
type Extractor struct {
	logger logging.Logger
}

// New creates an Extractor. A nil logger falls back to a default adapter.
func New(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Extractor{logger: logger}
}

// Extract parses the buffer and returns the located transaction table.
// The filename is used only for error reporting here; issuer guessing from
// filenames happens independently in the pipeline.
func (e *Extractor) Extract(data []byte, filename string) (*models.RawSheet, error) {
	grids, err := readGrids(data)
	if err != nil {
		return nil, &ingesterr.ExtractionError{Filename: filename, Reason: err.Error()}
	}

	grid, profile, markerRow := selectSheet(grids)
	e.logger.Debug("Selected sheet",
		logging.Field{Key: "sheet", Value: grid.name},
		logging.Field{Key: "rows", Value: len(grid.rows)})
	if profile != nil {
		e.logger.Debug("Matched issuer profile",
			logging.Field{Key: "issuer", Value: profile.Name},
			logging.Field{Key: "marker_row", Value: markerRow})
	}

	headerRow, synthetic := locateHeader(grid, profile, markerRow)
	if headerRow >= len(grid.rows) && !synthetic {
		return nil, &ingesterr.ExtractionError{Filename: filename, Reason: "header row beyond end of sheet"}
	}

	var headers []string
	var dataStart int
	if synthetic {
		headers = syntheticHeaders(widestRow(grid.rows))
		dataStart = 0
	} else {
		headers, dataStart = mergeHeaderRows(grid, headerRow)
	}
	headers = resolveHeaders(headers)

	rows := collectDataRows(grid, dataStart, headers)
	if len(rows) == 0 {
		return nil, &ingesterr.ExtractionError{Filename: filename, Reason: "no usable data rows after filtering"}
	}

	e.logger.Info("Extracted transaction table",
		logging.Field{Key: "sheet", Value: grid.name},
		logging.Field{Key: "columns", Value: len(headers)},
		logging.Field{Key: "rows", Value: len(rows)})

	return &models.RawSheet{
		Headers:   headers,
		Rows:      rows,
		Synthetic: synthetic,
		Issuer:    profile,
	}, nil
}

// selectSheet scans every sheet's first rows for an issuer section marker
// and returns the first sheet containing one, or the first sheet overall.
func selectSheet(grids []sheetGrid) (sheetGrid, *models.IssuerProfile, int) {
	for _, grid := range grids {
		limit := len(grid.rows)
		if limit > markerScanRows {
			limit = markerScanRows
		}
		for r := 0; r < limit; r++ {
			for _, cell := range grid.rows[r] {
				if profile := models.MatchMarker(cell); profile != nil {
					return grid, profile, r
				}
			}
		}
	}
	return grids[0], nil, -1
}

// syntheticHeaders generates positional column names for headerless sheets.
func syntheticHeaders(width int) []string {
	headers := make([]string, width)
	for i := range headers {
		headers[i] = fmt.Sprintf("column%d", i+1)
	}
	return headers
}

func widestRow(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// resolveHeaders trims labels, fills empty ones positionally and
// disambiguates duplicates so rows can be keyed by header name.
func resolveHeaders(headers []string) []string {
	seen := make(map[string]int, len(headers))
	resolved := make([]string, len(headers))
	for i, h := range headers {
		h = strings.Join(strings.Fields(h), " ")
		if h == "" {
			h = fmt.Sprintf("column%d", i+1)
		}
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s_%d", h, n)
		}
		resolved[i] = h
	}
	return resolved
}
