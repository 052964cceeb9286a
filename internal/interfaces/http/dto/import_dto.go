package dto

import "github.com/orderdesk/backend/internal/application/leadimport"

// LeadImportResponse summarizes one processed lead import batch
type LeadImportResponse struct {
	Summary      string   `json:"summary"`
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	SkippedEmpty int      `json:"skipped_empty"`
	Messages     []string `json:"messages,omitempty"`
	InfoNotices  []string `json:"info_notices,omitempty"`
	// ReportID is set only when the batch had failures; it keys a single
	// failed-rows CSV download.
	ReportID string `json:"report_id,omitempty"`
}

// NewLeadImportResponse builds the API response from a batch report
func NewLeadImportResponse(report *leadimport.BatchReport) LeadImportResponse {
	resp := LeadImportResponse{
		Summary:      report.Summary(),
		SuccessCount: report.SuccessCount,
		ErrorCount:   report.ErrorCount,
		SkippedEmpty: report.SkippedEmpty,
		Messages:     report.Messages,
		InfoNotices:  report.InfoNotices,
	}
	if report.HasFailures() {
		resp.ReportID = report.ID
	}
	return resp
}

// MissingColumnsResponse reports a header rejected at upload time
type MissingColumnsResponse struct {
	Missing []string `json:"missing"`
	Found   []string `json:"found"`
}
