package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Sheet is one worksheet of an uploaded file. Rows[0] is the header row.
type Sheet struct {
	Name string
	Rows [][]string
}

// ReadWorkbook parses an xlsx workbook and returns all non-empty sheets.
func ReadWorkbook(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetNames := f.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	sheets := make([]Sheet, 0, len(sheetNames))
	for _, name := range sheetNames {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		if len(rows) == 0 {
			continue
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}

	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no data")
	}

	return sheets, nil
}

// ReadCSV parses a CSV export as a single synthetic sheet. Legacy exports
// from desktop pharmacy systems are often windows-1251/1252 encoded; enc
// selects the decoder ("" or "utf-8" reads the bytes as-is).
func ReadCSV(r io.Reader, enc string) ([]Sheet, error) {
	decoded, err := decodeReader(r, enc)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1 // header and data rows may differ in width
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	return []Sheet{{Name: "csv", Rows: rows}}, nil
}

// decodeReader wraps r with a charmap decoder for legacy encodings.
func decodeReader(r io.Reader, enc string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1251", "cp1251":
		return transform.NewReader(r, charmap.Windows1251.NewDecoder()), nil
	case "windows-1252", "cp1252", "latin-1", "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", enc)
	}
}

// ReadUploadFile dispatches on the file extension. CSV uploads may carry an
// explicit encoding; workbooks are always read through excelize.
func ReadUploadFile(r io.Reader, filename, encoding string) ([]Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r, encoding)
	case ".xlsx", ".xlsm", ".xls":
		return ReadWorkbook(r)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}
