package leadimport

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/google/uuid"
)

// FailedRow pairs a failed row's original cells with the reason it failed
type FailedRow struct {
	Row    int      `json:"row"`
	Cells  []string `json:"cells"`
	Reason string   `json:"reason"`
}

// BatchReport summarizes one import batch. It exists for the duration of
// one upload/response cycle plus a single failed-rows download; it is not a
// durable record (the audit log is).
type BatchReport struct {
	ID           string      `json:"id"`
	TenantID     uuid.UUID   `json:"tenant_id"`
	SuccessCount int         `json:"success_count"`
	ErrorCount   int         `json:"error_count"`
	SkippedEmpty int         `json:"skipped_empty"`
	Messages     []string    `json:"messages"`
	InfoNotices  []string    `json:"info_notices"`
	Header       []string    `json:"header"`
	FailedRows   []FailedRow `json:"failed_rows"`
}

// NewBatchReport creates an empty report with a fresh ID for the given
// tenant and uploaded header.
func NewBatchReport(tenantID uuid.UUID, header []string) *BatchReport {
	return &BatchReport{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Header:   header,
	}
}

// RecordSuccess counts one materialized order
func (r *BatchReport) RecordSuccess() {
	r.SuccessCount++
}

// RecordSkippedEmpty counts one silently skipped blank row
func (r *BatchReport) RecordSkippedEmpty() {
	r.SkippedEmpty++
}

// RecordError records one failed row with its original cells
func (r *BatchReport) RecordError(rowErr *RowError) {
	r.ErrorCount++
	r.Messages = append(r.Messages, rowErr.Message())
	r.FailedRows = append(r.FailedRows, FailedRow{
		Row:    rowErr.Row,
		Cells:  rowErr.Cells,
		Reason: rowErr.Reason,
	})
}

// RecordNotice records an informational notice (not an error)
func (r *BatchReport) RecordNotice(notice string) {
	r.InfoNotices = append(r.InfoNotices, notice)
}

// HasFailures reports whether any row failed
func (r *BatchReport) HasFailures() bool {
	return r.ErrorCount > 0
}

// Summary renders the one-line description written to the audit log
func (r *BatchReport) Summary() string {
	return fmt.Sprintf("lead import: %d succeeded, %d failed, %d blank rows skipped",
		r.SuccessCount, r.ErrorCount, r.SkippedEmpty)
}

// FailedCSV renders the failed rows as a CSV: the original header plus an
// appended "Error Reason" column, one data row per failed row with its
// original cells reproduced verbatim.
func (r *BatchReport) FailedCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append(append([]string{}, r.Header...), "Error Reason")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, failed := range r.FailedRows {
		// Short rows pad to the header width; rows that arrived with extra
		// cells keep them, so the download reproduces the upload verbatim.
		width := max(len(failed.Cells), len(r.Header))
		cells := make([]string, width, width+1)
		copy(cells, failed.Cells)
		cells = append(cells, failed.Reason)
		if err := w.Write(cells); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportStore holds batch reports between the upload response and the
// failed-rows download. Reports are keyed by tenant and report ID, so one
// tenant can never read another tenant's report. Take removes the report as
// it reads it, so the download works exactly once.
type ReportStore interface {
	Save(ctx context.Context, report *BatchReport) error
	Take(ctx context.Context, tenantID uuid.UUID, id string) (*BatchReport, error)
}
