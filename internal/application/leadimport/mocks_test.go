package leadimport

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/orderdesk/backend/internal/domain/audit"
	"github.com/orderdesk/backend/internal/domain/branding"
	"github.com/orderdesk/backend/internal/domain/catalog"
	"github.com/orderdesk/backend/internal/domain/geo"
	"github.com/orderdesk/backend/internal/domain/identity"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/trade"
)

type mockCustomerRepository struct {
	mock.Mock
}

func (m *mockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *mockCustomerRepository) FindActiveByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *mockCustomerRepository) FindActiveByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *mockCustomerRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindActiveByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

type mockCityRepository struct {
	mock.Mock
}

func (m *mockCityRepository) Save(ctx context.Context, city *geo.City) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}

func (m *mockCityRepository) FindActiveByName(ctx context.Context, name string) (*geo.City, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.City), args.Error(1)
}

type mockBrandingRepository struct {
	mock.Mock
}

func (m *mockBrandingRepository) Save(ctx context.Context, b *branding.Branding) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBrandingRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*branding.Branding, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branding.Branding), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindActiveByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]*identity.User, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *mockOrderRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuditRepository struct {
	mock.Mock
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// fakeUnitOfWork runs the transactional function directly against the
// configured repositories, recording whether a transaction was opened.
type fakeUnitOfWork struct {
	repos  TxRepos
	opened bool
}

func (f *fakeUnitOfWork) WithinTransaction(_ context.Context, fn func(repos TxRepos) error) error {
	f.opened = true
	return fn(f.repos)
}

// fakeReportStore is a map-backed one-shot store for service tests, keyed
// by tenant and report ID like the real implementations.
type fakeReportStore struct {
	reports map[string]*BatchReport
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: make(map[string]*BatchReport)}
}

func (s *fakeReportStore) Save(_ context.Context, report *BatchReport) error {
	s.reports[report.TenantID.String()+"/"+report.ID] = report
	return nil
}

func (s *fakeReportStore) Take(_ context.Context, tenantID uuid.UUID, id string) (*BatchReport, error) {
	key := tenantID.String() + "/" + id
	report, ok := s.reports[key]
	if !ok {
		return nil, shared.ErrNotFound
	}
	delete(s.reports, key)
	return report, nil
}
