// Package csvio provides CSV reading with the tolerances uploaded files
// need in practice: UTF-8 BOM stripping, encoding validation, and ragged
// rows (rows with fewer or more cells than the header).
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyFile indicates the uploaded file has no content
	ErrEmptyFile = errors.New("file is empty")
	// ErrInvalidEncoding indicates the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	// ErrMissingHeader indicates the file has no header row
	ErrMissingHeader = errors.New("file has no header row")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader reads CSV rows from an uploaded file. It strips a leading UTF-8
// byte-order mark and rejects content that is not valid UTF-8.
type Reader struct {
	csv *csv.Reader
	buf *bufio.Reader
}

// NewReader wraps r for CSV reading. It fails immediately on an empty file.
func NewReader(r io.Reader) (*Reader, error) {
	buf := bufio.NewReader(r)

	peek, err := buf.Peek(3)
	if err == io.EOF && len(peek) == 0 {
		return nil, ErrEmptyFile
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if len(peek) == 3 && peek[0] == utf8BOM[0] && peek[1] == utf8BOM[1] && peek[2] == utf8BOM[2] {
		if _, err := buf.Discard(3); err != nil {
			return nil, fmt.Errorf("discarding BOM: %w", err)
		}
	}

	cr := csv.NewReader(buf)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	return &Reader{csv: cr, buf: buf}, nil
}

// ReadHeader reads the first row of the file as the header. Cells are
// trimmed; an unreadable or absent first row is reported as ErrMissingHeader.
func (r *Reader) ReadHeader() ([]string, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	return trimCells(record), nil
}

// Read returns the next data row with cells trimmed, or io.EOF at end of
// file. Cells that are not valid UTF-8 fail the read.
func (r *Reader) Read() ([]string, error) {
	record, err := r.csv.Read()
	if err != nil {
		return nil, err
	}
	for _, cell := range record {
		if !utf8.ValidString(cell) {
			return nil, ErrInvalidEncoding
		}
	}
	return trimCells(record), nil
}

// IsBlank reports whether every cell of the row is empty after trimming
func IsBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
