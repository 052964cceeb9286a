package leadimport

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchReport_Counts(t *testing.T) {
	tenantID := uuid.New()
	report := NewBatchReport(tenantID, canonicalHeader())
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, tenantID, report.TenantID)
	assert.False(t, report.HasFailures())

	report.RecordSuccess()
	report.RecordSuccess()
	report.RecordSkippedEmpty()
	report.RecordError(&RowError{Row: 4, Reason: "City is required", Cells: []string{"x"}})
	report.RecordNotice("Row 2: existing customer matched by phone")

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.Equal(t, 1, report.SkippedEmpty)
	assert.True(t, report.HasFailures())
	assert.Equal(t, []string{"Row 4: City is required"}, report.Messages)
	assert.Len(t, report.InfoNotices, 1)
	assert.Contains(t, report.Summary(), "2 succeeded, 1 failed")
}

func TestBatchReport_FailedCSV(t *testing.T) {
	report := NewBatchReport(uuid.New(), canonicalHeader())
	row4 := validRow()
	row4[8] = "abc"
	report.RecordError(&RowError{Row: 4, Reason: `Quantity must be a positive whole number, got "abc"`, Cells: row4})
	// A short row from a ragged file pads out to the header width.
	report.RecordError(&RowError{Row: 6, Reason: "City is required", Cells: []string{"Kamal", "0712223334"}})

	out, err := report.FailedCSV()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3, "header plus exactly error_count data rows")
	assert.Equal(t, append(canonicalHeader(), "Error Reason"), records[0])
	assert.Equal(t, "abc", records[1][8])
	assert.Contains(t, records[1][len(records[1])-1], "Quantity")
	assert.Equal(t, "Kamal", records[2][0])
	assert.Equal(t, "City is required", records[2][len(records[2])-1])
	assert.Len(t, records[2], len(canonicalHeader())+1)
}

func TestBatchReport_FailedCSV_KeepsExtraCells(t *testing.T) {
	report := NewBatchReport(uuid.New(), []string{"Full Name", "Phone Number"})
	report.RecordError(&RowError{
		Row:    2,
		Reason: "bad row",
		Cells:  []string{"Anil", "0771234567", "stray-cell"},
	})

	out, err := report.FailedCSV()
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(out)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// A row wider than the header keeps its extra cells, with the reason
	// still last.
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Anil", "0771234567", "stray-cell", "bad row"}, records[1])
}
