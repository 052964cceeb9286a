package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/application/leadimport"
)

// GormUnitOfWork implements leadimport.UnitOfWork on top of a GORM
// transaction. Repositories handed to the callback are bound to the
// transaction, so every write inside the callback commits or rolls back
// together.
type GormUnitOfWork struct {
	db *gorm.DB
}

var _ leadimport.UnitOfWork = (*GormUnitOfWork)(nil)

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// WithinTransaction runs fn inside a single database transaction
func (u *GormUnitOfWork) WithinTransaction(ctx context.Context, fn func(leadimport.TxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(leadimport.TxRepos{
			Customers: NewGormCustomerRepository(tx),
			Orders:    NewGormOrderRepository(tx),
			Audit:     NewGormActivityLogRepository(tx),
		})
	})
}
