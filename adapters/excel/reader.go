package excel

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sheetboard/domain/core"
	"sheetboard/domain/sheet"

	"github.com/xuri/excelize/v2"
)

// Supported file types
const (
	FileTypeXLSX = "xlsx"
	FileTypeCSV  = "csv"
)

// DetectFileType maps a filename to a supported file type by extension.
// Anything other than .xlsx or .csv is rejected before parsing.
func DetectFileType(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FileTypeXLSX, nil
	case ".csv":
		return FileTypeCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (accepted: .xlsx, .csv)", core.ErrUnsupportedFile, filepath.Ext(filename))
	}
}

// DataReader reads Excel and CSV workbooks into raw sheets
type DataReader struct {
	filename string
	fileType string
}

// NewDataReader creates a reader for the given filename, validating its extension
func NewDataReader(filename string) (*DataReader, error) {
	fileType, err := DetectFileType(filename)
	if err != nil {
		return nil, err
	}
	return &DataReader{filename: filename, fileType: fileType}, nil
}

// ReadFile opens path and reads it
func ReadFile(path string) (*sheet.RawSheet, error) {
	reader, err := NewDataReader(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	return reader.Read(file)
}

// Read reads the workbook content from r
func (r *DataReader) Read(src io.Reader) (*sheet.RawSheet, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filename)

	switch r.fileType {
	case FileTypeCSV:
		return r.readCSV(src)
	case FileTypeXLSX:
		return r.readExcel(src)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, r.fileType)
	}
}

// readExcel reads the first sheet of an xlsx workbook
func (r *DataReader) readExcel(src io.Reader) (*sheet.RawSheet, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrEmptySheet)
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}
	log.Printf("[DataReader] Sheet %s read in %.2fms (%d rows)", sheetName, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	raw := &sheet.RawSheet{
		FileInfo: sheet.FileInfo{Name: filepath.Base(r.filename), SheetName: sheetName},
		Rows:     make([]sheet.Row, 0, len(rows)),
	}
	for rowIdx, values := range rows {
		row := make(sheet.Row, len(values))
		for colIdx, value := range values {
			row[colIdx] = excelCell(f, sheetName, colIdx, rowIdx, value)
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw, nil
}

// excelCell resolves a formatted cell value into a Cell, using the native
// cell type so numbers stored as text stay text and dates stay formatted.
func excelCell(f *excelize.File, sheetName string, colIdx, rowIdx int, value string) sheet.Cell {
	if value == "" {
		return sheet.Empty()
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return sheet.Text(value)
	}
	cellRef, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return sheet.Text(value)
	}
	cellType, err := f.GetCellType(sheetName, cellRef)
	if err != nil || (cellType != excelize.CellTypeNumber && cellType != excelize.CellTypeUnset) {
		return sheet.Text(value)
	}
	return sheet.Numeric(number)
}

// readCSV reads CSV data; comma and semicolon delimiters are detected from the header line
func (r *DataReader) readCSV(src io.Reader) (*sheet.RawSheet, error) {
	buffered := bufio.NewReader(src)
	if bom, _ := buffered.Peek(len(utf8BOM)); bytes.Equal(bom, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}
	head, _ := buffered.Peek(4096)

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = detectDelimiter(head)

	readStart := time.Now()
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(records))

	raw := &sheet.RawSheet{
		FileInfo: sheet.FileInfo{Name: filepath.Base(r.filename), SheetName: strings.TrimSuffix(filepath.Base(r.filename), filepath.Ext(r.filename))},
		Rows:     make([]sheet.Row, 0, len(records)),
	}
	for _, record := range records {
		row := make(sheet.Row, len(record))
		for i, value := range record {
			row[i] = sheet.Text(value)
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw, nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

// detectDelimiter picks ';' when the first line has more semicolons than commas
func detectDelimiter(head []byte) rune {
	line := head
	if idx := bytes.IndexByte(head, '\n'); idx >= 0 {
		line = head[:idx]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
