package extractor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// sheetGrid is one worksheet (or the whole CSV file) as a plain cell grid.
type sheetGrid struct {
	name string
	rows [][]string
}

var (
	zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}
	utf8BOM  = []byte{0xef, 0xbb, 0xbf}
)

// readGrids turns a raw statement buffer into cell grids. ZIP magic selects
// the XLSX reader; anything else is treated as CSV text.
func readGrids(data []byte) ([]sheetGrid, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return readXLSX(data)
	}
	return readCSV(data)
}

func readXLSX(data []byte) ([]sheetGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var grids []sheetGrid
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", name, err)
		}
		grids = append(grids, sheetGrid{name: name, rows: rows})
	}
	if len(grids) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}
	return grids, nil
}

func readCSV(data []byte) ([]sheetGrid, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		rows = append(rows, record)
	}
	return []sheetGrid{{name: "csv", rows: rows}}, nil
}
