// Package ingest parses uploaded spreadsheets into seed phrase lists.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadSeedPhrases extracts the first column of every data row from an
// uploaded tabular file. The header row is skipped, as are rows with an
// empty first cell. CSV files are detected by extension; everything else
// is treated as a workbook.
func ReadSeedPhrases(filename string, r io.Reader) ([]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(r)
	}
	return readWorkbook(r)
}

func readWorkbook(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return firstColumn(rows), nil
}

func readCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return firstColumn(rows), nil
}

func firstColumn(rows [][]string) []string {
	var out []string
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		out = append(out, cell)
	}
	return out
}
