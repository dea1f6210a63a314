package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadCSV loads a table from a CSV file. The first row is the header.
// Handles a UTF-8 BOM, lazy quotes, and sanitizes invalid UTF-8 bytes
// (some clinical exports arrive Windows-1252 encoded).
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i, h := range header {
		header[i] = sanitize(strings.TrimSpace(h))
	}

	t, err := New(header...)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowNum+1, err)
		}
		rowNum++

		// Skip empty rows
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", rowNum, len(row), len(header))
		}
		for i, cell := range row {
			row[i] = sanitize(cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// WriteCSV writes the table to a CSV file, header first.
func WriteCSV(t *Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	bw := bufio.NewWriterSize(file, 256*1024)
	w := csv.NewWriter(bw)

	if err := w.Write(t.Columns); err != nil {
		file.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := w.Write(row); err != nil {
			file.Close()
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("flush: %w", err)
	}
	return file.Close()
}

// sanitize replaces invalid UTF-8 bytes with the replacement rune.
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "�")
}
