package excel

import (
	"fmt"
	"strings"

	"sheetboard/domain/core"
	"sheetboard/domain/sheet"
)

// Sample sizes used by the two briefing paths
const (
	HeuristicSampleSize  = 10
	ClassifierSampleSize = 5
)

// Normalize turns a raw sheet into a table plus the structure used for inference.
//
// Row 0 is the header row. Empty header cells are dropped and the remaining
// columns re-indexed contiguously; data rows that are blank in every cell are
// discarded. SampleRows holds at most sampleSize rows while RowCount counts all
// retained rows.
func Normalize(raw *sheet.RawSheet, sampleSize int) (*sheet.Table, *sheet.ExcelStructure, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return nil, nil, core.ErrEmptySheet
	}

	var headers []string
	var kept []int
	seen := make(map[string]int)
	for idx, cell := range raw.Rows[0] {
		header := cell.Trimmed()
		if header == "" {
			continue
		}
		headers = append(headers, uniqueHeader(header, seen))
		kept = append(kept, idx)
	}
	if len(headers) == 0 {
		return nil, nil, core.ErrNoHeaders
	}

	rows := make([]sheet.Row, 0, len(raw.Rows)-1)
	for _, rawRow := range raw.Rows[1:] {
		row := make(sheet.Row, len(kept))
		blank := true
		for j, src := range kept {
			row[j] = rawRow.At(src)
			if !row[j].IsBlank() {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	if sampleSize < 0 {
		sampleSize = 0
	}
	sampleLen := len(rows)
	if sampleLen > sampleSize {
		sampleLen = sampleSize
	}
	sample := make([]sheet.Row, sampleLen)
	copy(sample, rows[:sampleLen])

	table := &sheet.Table{Headers: headers, Rows: rows}
	structure := &sheet.ExcelStructure{
		Headers:    headers,
		RowCount:   len(rows),
		SampleRows: sample,
		FileInfo:   raw.FileInfo,
	}
	return table, structure, nil
}

// uniqueHeader suffixes repeated header text so every position has a distinct name
func uniqueHeader(header string, seen map[string]int) string {
	key := strings.ToLower(header)
	seen[key]++
	if seen[key] == 1 {
		return header
	}
	for n := seen[key]; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", header, n)
		candidateKey := strings.ToLower(candidate)
		if seen[candidateKey] == 0 {
			seen[candidateKey] = 1
			return candidate
		}
	}
}
