package leadimport

import (
	"fmt"
	"strings"
)

// HeaderMap maps each canonical field to its column index in the uploaded
// file. It is built once per batch, before any data row is read, and is
// complete by construction: a HeaderMap never lacks a canonical field.
type HeaderMap struct {
	index  map[FieldKey]int
	labels []string
}

// MissingColumnsError reports the canonical columns a header row failed to
// provide, alongside the headers actually found.
type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s (found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// NewHeaderMap validates a raw header row against the canonical schema.
// Matching is insensitive to case, spacing and punctuation. When any
// canonical column is absent it returns a MissingColumnsError and the batch
// must not proceed.
func NewHeaderMap(raw []string) (*HeaderMap, error) {
	index := make(map[FieldKey]int, numFields)
	for i, cell := range raw {
		key := normalizeHeaderCell(cell)
		if key == "" {
			continue
		}
		if field, ok := matchKeys[key]; ok {
			if _, dup := index[field]; !dup {
				index[field] = i
			}
		}
	}

	var missing []string
	for _, f := range AllFields() {
		if _, ok := index[f]; !ok {
			missing = append(missing, f.Label())
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing, Found: raw}
	}

	labels := make([]string, len(raw))
	copy(labels, raw)
	return &HeaderMap{index: index, labels: labels}, nil
}

// Cell returns the row's value for a canonical field, trimmed. Rows shorter
// than the header read as empty for the missing columns.
func (h *HeaderMap) Cell(row []string, field FieldKey) string {
	i := h.index[field]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Labels returns the original header cells as uploaded
func (h *HeaderMap) Labels() []string {
	return h.labels
}
