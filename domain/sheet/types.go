package sheet

import "strings"

// FileInfo identifies the uploaded workbook and the sheet that was read
type FileInfo struct {
	Name      string `json:"name"`
	SheetName string `json:"sheetName"`
}

// RawSheet is an unnormalized sheet: row 0 is the header row
type RawSheet struct {
	FileInfo FileInfo
	Rows     []Row
}

// Table is a normalized sheet: unique non-empty headers and non-blank rows aligned to them
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// HeaderIndex returns the position of the header matching name case-insensitively, or -1
func (t *Table) HeaderIndex(name string) int {
	return HeaderIndex(t.Headers, name)
}

// ColumnValues returns the non-blank cells of a column, in row order
func (t *Table) ColumnValues(idx int) []Cell {
	values := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		cell := row.At(idx)
		if !cell.IsBlank() {
			values = append(values, cell)
		}
	}
	return values
}

// ExcelStructure is the per-request view of a sheet used for briefing inference
type ExcelStructure struct {
	Headers    []string `json:"headers"`
	RowCount   int      `json:"rowCount"`
	SampleRows []Row    `json:"sampleRows,omitempty"`
	FileInfo   FileInfo `json:"fileInfo"`
}

// HeaderIndex finds name among headers case-insensitively (after trimming), or returns -1
func HeaderIndex(headers []string, name string) int {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return -1
	}
	for i, h := range headers {
		if strings.ToLower(strings.TrimSpace(h)) == target {
			return i
		}
	}
	return -1
}
