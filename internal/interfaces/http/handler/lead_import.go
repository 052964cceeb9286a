package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/application/leadimport"
	"github.com/orderdesk/backend/internal/interfaces/http/dto"
)

// LeadImporter is the application surface the handler drives
type LeadImporter interface {
	ImportLeads(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, operatorIDs []uuid.UUID, file io.Reader) (*leadimport.BatchReport, error)
	TakeFailedRowsCSV(ctx context.Context, tenantID uuid.UUID, id string) ([]byte, error)
}

// LeadImportHandler handles bulk lead import operations
type LeadImportHandler struct {
	BaseHandler
	importer    LeadImporter
	maxFileSize int64
	logger      *zap.Logger
}

// NewLeadImportHandler creates a new LeadImportHandler
func NewLeadImportHandler(importer LeadImporter, maxFileSize int64, logger *zap.Logger) *LeadImportHandler {
	return &LeadImportHandler{
		importer:    importer,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// ImportLeads accepts a multipart CSV upload plus the operator assignment
// pool and runs the batch. The whole batch is rejected only for header or
// infrastructure failures; row-level problems come back in the report.
func (h *LeadImportHandler) ImportLeads(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	operatorIDs, err := parseOperatorIDs(c.PostFormArray("operator_ids"))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if len(operatorIDs) == 0 {
		h.BadRequest(c, "operator_ids is required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge,
			fmt.Sprintf("file exceeds maximum size of %d bytes", h.maxFileSize))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && contentType != "text/csv" && contentType != "application/octet-stream" &&
		contentType != "text/plain" && contentType != "application/vnd.ms-excel" {
		h.Error(c, http.StatusUnsupportedMediaType, dto.ErrCodeInvalidFile, "file must be a CSV file")
		return
	}

	report, err := h.importer.ImportLeads(ctx, tenantID, &userID, operatorIDs, file)
	if err != nil {
		var missing *leadimport.MissingColumnsError
		if errors.As(err, &missing) {
			c.JSON(http.StatusUnprocessableEntity, dto.Response{
				Success: false,
				Data: dto.MissingColumnsResponse{
					Missing: missing.Missing,
					Found:   missing.Found,
				},
				Error: &dto.ErrorInfo{
					Code:      dto.ErrCodeMissingColumns,
					Message:   missing.Error(),
					RequestID: getRequestID(c),
				},
			})
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewLeadImportResponse(report))
}

// DownloadFailedRows streams the failed-rows CSV for a report. Reports are
// tenant-scoped, so an ID belonging to another tenant is a 404. The download
// is one-shot: the report is removed when served, and a repeat request gets
// a 404.
func (h *LeadImportHandler) DownloadFailedRows(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	payload, err := h.importer.TakeFailedRowsCSV(ctx, tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "failed-rows-"+id+".csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

// DownloadTemplate serves the canonical upload template
func (h *LeadImportHandler) DownloadTemplate(c *gin.Context) {
	payload, err := leadimport.TemplateCSV()
	if err != nil {
		h.InternalError(c, "failed to build template")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="lead-import-template.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

// parseOperatorIDs parses operator UUIDs from repeated form values,
// accepting comma-separated lists inside each value
func parseOperatorIDs(values []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, fmt.Errorf("invalid operator ID %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// RegisterRoutes registers all lead import routes
func (h *LeadImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/import")
	{
		imports.POST("/leads", h.ImportLeads)
		imports.GET("/leads/template", h.DownloadTemplate)
		imports.GET("/leads/reports/:id/failed", h.DownloadFailedRows)
	}
}
