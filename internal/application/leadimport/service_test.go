package leadimport

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/branding"
	"github.com/orderdesk/backend/internal/domain/identity"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/trade"
)

const testHeader = "Full Name,Phone Number,Phone Number 2,City,Email,Address Line 1,Address Line 2,Product Code,Quantity,Total Amount,Other\n"

type serviceFixture struct {
	tenantID  uuid.UUID
	operators []uuid.UUID
	customers *mockCustomerRepository
	products  *mockProductRepository
	cities    *mockCityRepository
	brandings *mockBrandingRepository
	users     *mockUserRepository
	orders    *mockOrderRepository
	audits    *mockAuditRepository
	uow       *fakeUnitOfWork
	store     *fakeReportStore
	svc       *ImportService
}

func newServiceFixture(t *testing.T, maxRows int) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		tenantID:  uuid.New(),
		customers: new(mockCustomerRepository),
		products:  new(mockProductRepository),
		cities:    new(mockCityRepository),
		brandings: new(mockBrandingRepository),
		users:     new(mockUserRepository),
		orders:    new(mockOrderRepository),
		audits:    new(mockAuditRepository),
		store:     newFakeReportStore(),
	}
	f.uow = &fakeUnitOfWork{repos: TxRepos{
		Customers: f.customers,
		Orders:    f.orders,
		Audit:     f.audits,
	}}
	resolver := NewReferenceResolver(f.products, f.cities, f.brandings, zap.NewNop())
	materializer := NewOrderMaterializer(rand.New(rand.NewSource(1)))
	f.svc = NewImportService(f.uow, resolver, f.users, f.store, materializer, zap.NewNop(), maxRows)
	return f
}

// withDefaults wires the fixture for the happy path: two active operators,
// a branding record with a 350 delivery fee, product SKU-1 and city Colombo.
func (f *serviceFixture) withDefaults(t *testing.T) {
	t.Helper()
	op1, err := identity.NewUser(f.tenantID, "Op One", "op1@example.com", identity.RoleOperator)
	require.NoError(t, err)
	op2, err := identity.NewUser(f.tenantID, "Op Two", "op2@example.com", identity.RoleOperator)
	require.NoError(t, err)
	f.operators = []uuid.UUID{op1.ID, op2.ID}
	f.users.On("FindActiveByIDs", mock.Anything, f.tenantID, f.operators).
		Return([]*identity.User{op1, op2}, nil)

	b, err := branding.NewBranding(f.tenantID, "OrderDesk Store", dec("350.00"))
	require.NoError(t, err)
	f.brandings.On("FindActiveByTenant", mock.Anything, f.tenantID).Return(b, nil)

	_, product, city := fixtureRefs(t, f.tenantID)
	f.products.On("FindActiveByCode", mock.Anything, f.tenantID, "SKU-1").Return(product, nil)
	f.cities.On("FindActiveByName", mock.Anything, "Colombo").Return(city, nil)
}

func (f *serviceFixture) importCSV(t *testing.T, csvBody string) (*BatchReport, error) {
	t.Helper()
	return f.svc.ImportLeads(context.Background(), f.tenantID, nil, f.operators, strings.NewReader(csvBody))
}

func TestImportService_ThreeRowScenario(t *testing.T) {
	f := newServiceFixture(t, 0)
	f.withDefaults(t)

	existing, err := partner.NewCustomer(f.tenantID, "Saman Fernando", "0771234567")
	require.NoError(t, err)
	f.customers.On("FindActiveByPhone", mock.Anything, f.tenantID, "0771234567").Return(existing, nil)
	f.customers.On("FindActiveByPhone", mock.Anything, f.tenantID, "0705556667").Return(nil, shared.ErrNotFound)
	f.customers.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)
	f.products.On("FindActiveByCode", mock.Anything, f.tenantID, "ZZZ").Return(nil, shared.ErrNotFound)
	f.orders.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)
	f.audits.On("Append", mock.Anything, mock.AnythingOfType("*audit.ActivityLog")).Return(nil)

	body := testHeader +
		"Saman Fernando,0771234567,,Colombo,,12 Galle Rd,,SKU-1,1,1000,\n" +
		"Kamal Silva,0712223334,,Colombo,,5 Kandy Rd,,ZZZ,2,2000,\n" +
		"Ruwan Perera,0705556667,,Colombo,,8 Main St,,SKU-1,1,1500,\n"

	report, err := f.importCSV(t, body)
	require.NoError(t, err)

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.Equal(t, 0, report.SkippedEmpty)

	require.Len(t, report.InfoNotices, 1)
	assert.Equal(t, "Row 2: existing customer matched by phone", report.InfoNotices[0])

	require.Len(t, report.Messages, 1)
	assert.Contains(t, report.Messages[0], "Row 3")
	assert.Contains(t, report.Messages[0], "ZZZ")

	// One order per successful row, one new customer only for the
	// unmatched row, and one audit entry for the batch.
	f.orders.AssertNumberOfCalls(t, "Save", 2)
	f.customers.AssertNumberOfCalls(t, "Save", 1)
	f.audits.AssertNumberOfCalls(t, "Append", 1)
	assert.True(t, f.uow.opened)

	// Another tenant cannot take the report, and trying does not consume it.
	_, err = f.svc.TakeFailedRowsCSV(context.Background(), uuid.New(), report.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// The stored report serves the owning tenant's failed-rows download
	// exactly once.
	out, err := f.svc.TakeFailedRowsCSV(context.Background(), f.tenantID, report.ID)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Error Reason")
	assert.Contains(t, string(out), "Kamal Silva")

	_, err = f.svc.TakeFailedRowsCSV(context.Background(), f.tenantID, report.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestImportService_MissingColumnRejectsBatch(t *testing.T) {
	f := newServiceFixture(t, 0)

	body := "Full Name,Phone Number,Phone Number 2,City,Email,Address Line 1,Address Line 2,Product Code,Total Amount,Other\n" +
		"Saman Fernando,0771234567,,Colombo,,12 Galle Rd,,SKU-1,1000,\n"

	report, err := f.importCSV(t, body)
	assert.Nil(t, report)

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Quantity"}, missing.Missing)
	assert.False(t, f.uow.opened, "no transaction before a valid header")
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImportService_BadValueFailsOnlyItsRow(t *testing.T) {
	f := newServiceFixture(t, 0)
	f.withDefaults(t)
	f.customers.On("FindActiveByPhone", mock.Anything, f.tenantID, mock.Anything).Return(nil, shared.ErrNotFound)
	f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.audits.On("Append", mock.Anything, mock.Anything).Return(nil)

	body := testHeader +
		"Saman Fernando,0771234567,,Colombo,,12 Galle Rd,,SKU-1,abc,1000,\n" +
		"Ruwan Perera,0705556667,,Colombo,,8 Main St,,SKU-1,1,1500,\n"

	report, err := f.importCSV(t, body)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.Contains(t, report.Messages[0], "Quantity")
}

func TestImportService_BlankRowsSkippedSilently(t *testing.T) {
	f := newServiceFixture(t, 0)
	f.withDefaults(t)
	f.customers.On("FindActiveByPhone", mock.Anything, f.tenantID, mock.Anything).Return(nil, shared.ErrNotFound)
	f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.audits.On("Append", mock.Anything, mock.Anything).Return(nil)

	body := testHeader +
		",,,,,,,,,,\n" +
		"Ruwan Perera,0705556667,,Colombo,,8 Main St,,SKU-1,1,1500,\n" +
		",,,,,,,,,,\n"

	report, err := f.importCSV(t, body)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 0, report.ErrorCount)
	assert.Equal(t, 2, report.SkippedEmpty)
	assert.Empty(t, report.Messages)
}

func TestImportService_EmptyOperatorPoolIsFatal(t *testing.T) {
	t.Run("no operators submitted", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		report, err := f.importCSV(t, testHeader)
		assert.Nil(t, report)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "EMPTY_OPERATOR_POOL", domainErr.Code)
	})

	t.Run("no submitted operator is an active tenant user", func(t *testing.T) {
		f := newServiceFixture(t, 0)
		f.operators = []uuid.UUID{uuid.New()}
		f.users.On("FindActiveByIDs", mock.Anything, f.tenantID, f.operators).
			Return([]*identity.User{}, nil)

		report, err := f.importCSV(t, testHeader)
		assert.Nil(t, report)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "EMPTY_OPERATOR_POOL", domainErr.Code)
		assert.False(t, f.uow.opened)
	})
}

func TestImportService_AllRowsFailedStillCommits(t *testing.T) {
	f := newServiceFixture(t, 0)
	f.withDefaults(t)
	f.audits.On("Append", mock.Anything, mock.Anything).Return(nil)

	body := testHeader +
		"Saman Fernando,12345,,Colombo,,12 Galle Rd,,SKU-1,1,1000,\n"

	report, err := f.importCSV(t, body)
	require.NoError(t, err, "a batch with zero successes is not an infrastructure failure")
	assert.Equal(t, 0, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.True(t, f.uow.opened)
	f.audits.AssertNumberOfCalls(t, "Append", 1)
}

func TestImportService_MissingBrandingMeansZeroFee(t *testing.T) {
	f := newServiceFixture(t, 0)

	op, err := identity.NewUser(f.tenantID, "Op", "op@example.com", identity.RoleOperator)
	require.NoError(t, err)
	f.operators = []uuid.UUID{op.ID}
	f.users.On("FindActiveByIDs", mock.Anything, f.tenantID, f.operators).
		Return([]*identity.User{op}, nil)
	f.brandings.On("FindActiveByTenant", mock.Anything, f.tenantID).Return(nil, shared.ErrNotFound)

	_, product, city := fixtureRefs(t, f.tenantID)
	f.products.On("FindActiveByCode", mock.Anything, f.tenantID, "SKU-1").Return(product, nil)
	f.cities.On("FindActiveByName", mock.Anything, "Colombo").Return(city, nil)
	f.customers.On("FindActiveByPhone", mock.Anything, f.tenantID, mock.Anything).Return(nil, shared.ErrNotFound)
	f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.audits.On("Append", mock.Anything, mock.Anything).Return(nil)

	var saved *trade.Order
	f.orders.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*trade.Order) }).
		Return(nil)

	body := testHeader +
		"Ruwan Perera,0705556667,,Colombo,,8 Main St,,SKU-1,1,1500,\n"

	report, err := f.importCSV(t, body)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	require.NotNil(t, saved)
	assert.True(t, saved.DeliveryFee.IsZero())
	assert.True(t, saved.TotalAmount.Equal(dec("1500")))
}

func TestImportService_RowCapIsFatal(t *testing.T) {
	f := newServiceFixture(t, 1)
	f.withDefaults(t)
	f.customers.On("FindActiveByPhone", mock.Anything, f.tenantID, mock.Anything).Return(nil, shared.ErrNotFound)
	f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)

	body := testHeader +
		"Ruwan Perera,0705556667,,Colombo,,8 Main St,,SKU-1,1,1500,\n" +
		"Saman Fernando,0771234567,,Colombo,,12 Galle Rd,,SKU-1,1,1000,\n"

	report, err := f.importCSV(t, body)
	assert.Nil(t, report)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOO_MANY_ROWS", domainErr.Code)
}

func TestImportService_AuditFailureAbortsBatch(t *testing.T) {
	f := newServiceFixture(t, 0)
	f.withDefaults(t)
	f.customers.On("FindActiveByPhone", mock.Anything, f.tenantID, mock.Anything).Return(nil, shared.ErrNotFound)
	f.customers.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.audits.On("Append", mock.Anything, mock.Anything).Return(assert.AnError)

	body := testHeader +
		"Ruwan Perera,0705556667,,Colombo,,8 Main St,,SKU-1,1,1500,\n"

	report, err := f.importCSV(t, body)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestImportService_EmptyFile(t *testing.T) {
	f := newServiceFixture(t, 0)
	report, err := f.importCSV(t, "")
	assert.Nil(t, report)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_FILE", domainErr.Code)
}
