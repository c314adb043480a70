package importer

import (
	"bytes"
	"strings"
	"testing"
)

// TestReadCSV verifies CSV parsing into a single synthetic sheet.
func TestReadCSV(t *testing.T) {
	input := "Medicine Name,Batch,Qty\nParacetamol 500,B100,50\n"

	sheets, err := ReadCSV(strings.NewReader(input), "")
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}
	if len(sheets[0].Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sheets[0].Rows))
	}
	if sheets[0].Rows[1][0] != "Paracetamol 500" {
		t.Errorf("unexpected cell: %q", sheets[0].Rows[1][0])
	}
}

// TestReadCSV_Windows1252 verifies legacy encoding decode.
func TestReadCSV_Windows1252(t *testing.T) {
	// "Ibuprofén" with é encoded as 0xE9 in windows-1252.
	raw := []byte("Medicine Name\nIbuprof\xe9n\n")

	sheets, err := ReadCSV(bytes.NewReader(raw), "windows-1252")
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if got := sheets[0].Rows[1][0]; got != "Ibuprofén" {
		t.Errorf("decoded cell = %q, want Ibuprofén", got)
	}
}

// TestReadCSV_Empty verifies the top-level failure for empty input.
func TestReadCSV_Empty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader(""), ""); err == nil {
		t.Error("expected error for empty CSV")
	}
}

// TestReadUploadFile_UnsupportedExtension verifies extension dispatch.
func TestReadUploadFile_UnsupportedExtension(t *testing.T) {
	if _, err := ReadUploadFile(strings.NewReader("x"), "report.pdf", ""); err == nil {
		t.Error("expected error for unsupported file type")
	}
}

// TestDecodeReader_UnknownEncoding verifies the encoding whitelist.
func TestDecodeReader_UnknownEncoding(t *testing.T) {
	if _, err := decodeReader(strings.NewReader("x"), "koi8-r"); err == nil {
		t.Error("expected error for unsupported encoding")
	}
}
