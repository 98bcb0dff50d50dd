package event

import (
	"context"
	"errors"
	"testing"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memActivity struct {
	lines []*sales.ActivityLog
	err   error
}

func (m *memActivity) Create(_ context.Context, log *sales.ActivityLog) error {
	if m.err != nil {
		return m.err
	}
	m.lines = append(m.lines, log)
	return nil
}

func (m *memActivity) FindRecent(context.Context, uuid.UUID, int) ([]sales.ActivityLog, error) {
	return nil, nil
}

func TestActivityRecorder_RecordsSubscribedEvents(t *testing.T) {
	repo := &memActivity{}
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewActivityRecorder(repo))

	tenantID := uuid.New()
	product, err := catalog.NewProduct(tenantID, "Gorra", decimal.NewFromInt(30000))
	require.NoError(t, err)
	staff, err := identity.NewStaffUser(tenantID, "staff@example.com", "secret123", "Luis", identity.RoleStaff, nil)
	require.NoError(t, err)
	order, err := sales.NewOrder(tenantID, sales.CustomerInfo{Name: "Ana"}, sales.SourceWeb, "", "")
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(),
		catalog.NewProductCreatedEvent(product),
		identity.NewStaffInvitedEvent(staff, "temp"),
		sales.NewOrderPaidEvent(order, "tx-1"),
		sales.NewOrderCreatedEvent(order),
	))

	require.Len(t, repo.lines, 3)
	assert.Equal(t, sales.ActionProductCreated, repo.lines[0].Action)
	assert.Equal(t, sales.ActionStaffInvited, repo.lines[1].Action)
	assert.Equal(t, sales.ActionOrderPaid, repo.lines[2].Action)
	assert.Contains(t, repo.lines[2].Detail, "tx-1")
	for _, line := range repo.lines {
		assert.Equal(t, tenantID, line.TenantID)
	}
	assert.Equal(t, order.ID, *repo.lines[2].TargetID)
}

func TestActivityRecorder_WrapsRepositoryError(t *testing.T) {
	repo := &memActivity{err: errors.New("db down")}
	order, err := sales.NewOrder(uuid.New(), sales.CustomerInfo{Name: "Ana"}, sales.SourceWeb, "", "")
	require.NoError(t, err)

	err = NewActivityRecorder(repo).Handle(context.Background(), sales.NewOrderPaidEvent(order, ""))
	assert.ErrorContains(t, err, "record OrderPaid activity")
}
