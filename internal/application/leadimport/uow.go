package leadimport

import (
	"context"

	"github.com/orderdesk/backend/internal/domain/audit"
	"github.com/orderdesk/backend/internal/domain/partner"
	"github.com/orderdesk/backend/internal/domain/trade"
)

// TxRepos bundles the repositories whose writes must share the batch
// transaction. Customer reads run through the same handles so a customer
// created for an earlier row of the file is visible to later rows.
type TxRepos struct {
	Customers partner.CustomerRepository
	Orders    trade.OrderRepository
	Audit     audit.ActivityLogRepository
}

// UnitOfWork runs a function inside one database transaction. The
// transaction commits when fn returns nil and rolls back when it returns an
// error.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(repos TxRepos) error) error
}
