package leadimport

import (
	"bytes"
	"encoding/csv"
)

// TemplateCSV renders the blank upload template: one header row with the
// canonical column names, no data rows.
func TemplateCSV() ([]byte, error) {
	header := make([]string, 0, numFields)
	for _, f := range AllFields() {
		header = append(header, f.Label())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
