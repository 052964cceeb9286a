package leadimport

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/audit"
	"github.com/orderdesk/backend/internal/domain/identity"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/csvio"
)

// BatchState tracks where a batch is in its lifecycle
type BatchState int

const (
	StateIdle BatchState = iota
	StateHeaderValidated
	StateProcessing
	StateCommitting
	StateDone
	StateRejectedAtHeader
	StateAborted
)

func (s BatchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHeaderValidated:
		return "header_validated"
	case StateProcessing:
		return "processing"
	case StateCommitting:
		return "committing"
	case StateDone:
		return "done"
	case StateRejectedAtHeader:
		return "rejected_at_header"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// ImportService runs lead import batches. One batch is one uploaded CSV
// processed synchronously, in file order, inside a single database
// transaction opened after header validation.
//
// Per-row failures of any kind are recorded on the report and never roll
// anything back; the transaction commits unconditionally at end of file,
// even when every row failed. Only infrastructure failures (unreadable
// stream, lost connectivity, audit write failure) abort the batch with a
// full rollback.
//
// Concurrent batches for the same tenant are not guarded against each
// other: two uploads can both miss the same new phone number during dedup
// and create duplicate customers. The expected usage is one upload at a
// time per tenant.
type ImportService struct {
	uow          UnitOfWork
	resolver     *ReferenceResolver
	users        identity.UserRepository
	reports      ReportStore
	materializer *OrderMaterializer
	logger       *zap.Logger
	maxRows      int
}

// NewImportService creates an import service. maxRows caps the data rows
// accepted per batch; zero means no cap.
func NewImportService(
	uow UnitOfWork,
	resolver *ReferenceResolver,
	users identity.UserRepository,
	reports ReportStore,
	materializer *OrderMaterializer,
	logger *zap.Logger,
	maxRows int,
) *ImportService {
	return &ImportService{
		uow:          uow,
		resolver:     resolver,
		users:        users,
		reports:      reports,
		materializer: materializer,
		logger:       logger,
		maxRows:      maxRows,
	}
}

// ImportLeads processes one uploaded CSV for the tenant. operatorIDs is the
// admin-selected assignment pool; IDs that are not active users of the
// tenant are dropped, and an empty resulting pool fails the batch before
// any row is read. The returned report is also placed in the report store
// when it contains failures, keyed by tenant and report ID, for one
// failed-rows download.
func (s *ImportService) ImportLeads(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, operatorIDs []uuid.UUID, file io.Reader) (*BatchReport, error) {
	state := StateIdle

	reader, err := csvio.NewReader(file)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}

	rawHeader, err := reader.ReadHeader()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	header, err := NewHeaderMap(rawHeader)
	if err != nil {
		state = StateRejectedAtHeader
		s.logger.Info("lead import rejected at header",
			zap.String("tenant_id", tenantID.String()),
			zap.String("state", state.String()),
			zap.Error(err))
		return nil, err
	}
	state = StateHeaderValidated

	pool, err := s.operatorPool(ctx, tenantID, operatorIDs)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := s.resolver.DeliveryFee(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	report := NewBatchReport(tenantID, rawHeader)
	state = StateProcessing

	err = s.uow.WithinTransaction(ctx, func(repos TxRepos) error {
		rowNum := 1 // header row
		for {
			cells, readErr := reader.Read()
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				return fmt.Errorf("reading row %d: %w", rowNum+1, readErr)
			}
			rowNum++

			if csvio.IsBlank(cells) {
				report.RecordSkippedEmpty()
				continue
			}
			if s.maxRows > 0 && report.SuccessCount+report.ErrorCount >= s.maxRows {
				return shared.NewDomainError("TOO_MANY_ROWS",
					fmt.Sprintf("File exceeds the maximum of %d data rows", s.maxRows))
			}

			s.processRow(ctx, repos, tenantID, header, rowNum, cells, deliveryFee, pool, report)
		}

		entry, auditErr := audit.NewActivityLog(tenantID, actorID, audit.ActionLeadImport, report.Summary())
		if auditErr != nil {
			return auditErr
		}
		return repos.Audit.Append(ctx, entry)
	})
	if err != nil {
		state = StateAborted
		s.logger.Error("lead import aborted",
			zap.String("tenant_id", tenantID.String()),
			zap.String("state", state.String()),
			zap.Error(err))
		return nil, err
	}
	state = StateCommitting

	if report.HasFailures() {
		if err := s.reports.Save(ctx, report); err != nil {
			// The inline report still reaches the caller; only the
			// downloadable copy is lost.
			s.logger.Error("failed to store batch report",
				zap.String("report_id", report.ID),
				zap.Error(err))
		}
	}

	state = StateDone
	s.logger.Info("lead import finished",
		zap.String("tenant_id", tenantID.String()),
		zap.String("state", state.String()),
		zap.String("report_id", report.ID),
		zap.Int("success", report.SuccessCount),
		zap.Int("errors", report.ErrorCount),
		zap.Int("skipped_empty", report.SkippedEmpty))
	return report, nil
}

// processRow runs one data row through validation, resolution, customer
// dedup and order materialization. All failures are recorded on the report;
// nothing propagates past the row.
func (s *ImportService) processRow(ctx context.Context, repos TxRepos, tenantID uuid.UUID, header *HeaderMap, rowNum int, cells []string, deliveryFee decimal.Decimal, pool []uuid.UUID, report *BatchReport) {
	lead, rowErr := ParseRow(header, rowNum, cells)
	if rowErr != nil {
		report.RecordError(rowErr)
		return
	}

	product, err := s.resolver.ResolveProduct(ctx, tenantID, lead.ProductCode)
	if err != nil {
		report.RecordError(&RowError{Row: rowNum, Reason: err.Error(), Cells: cells})
		return
	}
	city, err := s.resolver.ResolveCity(ctx, lead.CityName)
	if err != nil {
		report.RecordError(&RowError{Row: rowNum, Reason: err.Error(), Cells: cells})
		return
	}

	customer, notice, err := ResolveCustomer(ctx, repos.Customers, tenantID, rowNum, lead, city.ID)
	if err != nil {
		s.logger.Error("customer write failed during import",
			zap.String("tenant_id", tenantID.String()),
			zap.Int("row", rowNum),
			zap.Error(err))
		report.RecordError(&RowError{Row: rowNum, Reason: "Failed to save customer: " + err.Error(), Cells: cells})
		return
	}
	if notice != "" {
		report.RecordNotice(notice)
	}

	order, err := s.materializer.Materialize(tenantID, lead, customer, product, city, deliveryFee, pool)
	if err != nil {
		report.RecordError(&RowError{Row: rowNum, Reason: err.Error(), Cells: cells})
		return
	}
	if err := repos.Orders.Save(ctx, order); err != nil {
		// Persistence failures point at schema or data assumptions being
		// wrong, not at bad user input, so they log louder.
		s.logger.Error("order insert failed during import",
			zap.String("tenant_id", tenantID.String()),
			zap.Int("row", rowNum),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
		report.RecordError(&RowError{Row: rowNum, Reason: "Failed to save order: " + err.Error(), Cells: cells})
		return
	}

	report.RecordSuccess()
}

// operatorPool filters the submitted operator IDs down to active users of
// the tenant. An empty result is batch-fatal: no order could be assigned.
func (s *ImportService) operatorPool(ctx context.Context, tenantID uuid.UUID, operatorIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(operatorIDs) == 0 {
		return nil, shared.NewDomainError("EMPTY_OPERATOR_POOL", "At least one operator must be selected")
	}
	users, err := s.users.FindActiveByIDs(ctx, tenantID, operatorIDs)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, shared.NewDomainError("EMPTY_OPERATOR_POOL", "None of the selected operators are active users of this tenant")
	}
	pool := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		pool = append(pool, u.ID)
	}
	return pool, nil
}

// TakeFailedRowsCSV removes the tenant's report from the store and renders
// its failed rows as a CSV. A second call with the same ID returns
// shared.ErrNotFound, as does a request for another tenant's report.
func (s *ImportService) TakeFailedRowsCSV(ctx context.Context, tenantID uuid.UUID, id string) ([]byte, error) {
	report, err := s.reports.Take(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return report.FailedCSV()
}
