package sales

import (
	"context"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/finance"
	"github.com/bayup/backend/internal/domain/sales"
)

// TransactionScope runs the order pipeline atomically. Every repository
// handed to fn shares one database transaction; returning an error rolls
// all of them back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories the order pipeline writes to
type TransactionalRepositories interface {
	VariantRepo() catalog.VariantRepository
	OrderRepo() sales.OrderRepository
	CustomerRepo() sales.CustomerRepository
	ShipmentRepo() sales.ShipmentRepository
	ActivityRepo() sales.ActivityLogRepository
	IncomeRepo() finance.IncomeRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used in tests and wherever atomicity is provided elsewhere.
type NoOpTransactionScope struct {
	variants   catalog.VariantRepository
	orders     sales.OrderRepository
	customers  sales.CustomerRepository
	shipments  sales.ShipmentRepository
	activities sales.ActivityLogRepository
	incomes    finance.IncomeRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(
	variants catalog.VariantRepository,
	orders sales.OrderRepository,
	customers sales.CustomerRepository,
	shipments sales.ShipmentRepository,
	activities sales.ActivityLogRepository,
	incomes finance.IncomeRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		variants:   variants,
		orders:     orders,
		customers:  customers,
		shipments:  shipments,
		activities: activities,
		incomes:    incomes,
	}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) VariantRepo() catalog.VariantRepository    { return s.variants }
func (s *NoOpTransactionScope) OrderRepo() sales.OrderRepository          { return s.orders }
func (s *NoOpTransactionScope) CustomerRepo() sales.CustomerRepository    { return s.customers }
func (s *NoOpTransactionScope) ShipmentRepo() sales.ShipmentRepository    { return s.shipments }
func (s *NoOpTransactionScope) ActivityRepo() sales.ActivityLogRepository { return s.activities }
func (s *NoOpTransactionScope) IncomeRepo() finance.IncomeRepository      { return s.incomes }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
