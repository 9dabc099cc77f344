package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goscores/domain/dataset"
	"goscores/ports"

	"github.com/xuri/excelize/v2"
)

var _ ports.TableReader = (*DataReader)(nil)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

// NewDataReader creates a reader for a .csv or .xlsx file. sheet is used for
// xlsx only and defaults to Sheet1.
func NewDataReader(filePath, sheet string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xlsm" {
		fileType = "xlsx"
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheet: sheet}
}

// ReadTable reads the file into a raw table
func (r *DataReader) ReadTable(ctx context.Context) (*dataset.RawTable, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelData reads the configured worksheet
func (r *DataReader) readExcelData() (*dataset.RawTable, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheet, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", r.sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return RowsToTable(r.filePath, rows)
}

func (r *DataReader) readCSVData() (*dataset.RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ParseCSV(r.filePath, file)
}

// ParseCSV reads CSV content into a raw table. Ragged rows are allowed; the
// normalizer treats missing trailing cells as empty.
func ParseCSV(source string, in io.Reader) (*dataset.RawTable, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	log.Printf("[DataReader] CSV read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return RowsToTable(source, rows)
}

// RowsToTable splits the header row from the data rows and trims every cell
func RowsToTable(source string, rows [][]string) (*dataset.RawTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", source)
	}

	table := &dataset.RawTable{
		Source:  source,
		Headers: append([]string(nil), rows[0]...),
		Rows:    make([][]string, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		table.Rows = append(table.Rows, cells)
	}

	log.Printf("[DataReader] %s processed (%d columns, %d rows)", source, len(table.Headers), len(table.Rows))
	return table, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
