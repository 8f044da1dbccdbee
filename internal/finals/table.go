// Package finals reads the weekly final tables of a season.
package finals

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a header row plus data rows, regardless of source format
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Cell returns a trimmed cell value, or "" for ragged rows and negative indexes
func (t *Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Reader decodes one table format
type Reader interface {
	Read(r io.Reader) (*Table, error)
}

// ReaderFactory picks a Reader for a file name
type ReaderFactory interface {
	GetReader(filename string) (Reader, error)
}

// Factory selects readers by file extension
type Factory struct{}

// NewFactory creates a reader factory
func NewFactory() *Factory {
	return &Factory{}
}

// GetReader returns the reader for the file's extension
func (f *Factory) GetReader(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return NewCSVReader(), nil
	case ".xlsx":
		return NewXLSXReader(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %q", ext)
	}
}

// Load opens, decodes and closes one table file
func Load(path string, factory ReaderFactory) (*Table, error) {
	reader, err := factory.GetReader(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := reader.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	table.Name = filepath.Base(path)
	return table, nil
}

// CSVReader reads comma separated tables
type CSVReader struct{}

// NewCSVReader creates a CSV reader
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Read decodes a CSV table. Rows may have any width; blank lines are dropped.
func (p *CSVReader) Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isBlank(record) {
			continue
		}
		records = append(records, record)
	}

	return newTable(records)
}

// XLSXReader reads the first sheet of a workbook
type XLSXReader struct{}

// NewXLSXReader creates an XLSX reader
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Read decodes the first sheet of an XLSX workbook
func (p *XLSXReader) Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX data: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var records [][]string
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		records = append(records, row)
	}

	return newTable(records)
}

func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("table is empty")
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	return &Table{Header: header, Rows: records[1:]}, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
