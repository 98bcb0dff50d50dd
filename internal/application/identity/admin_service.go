package identity

import (
	"context"
	"fmt"

	domain "github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/sales"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrSuperAdminOnly is returned to non super-admin callers of platform endpoints
var ErrSuperAdminOnly = shared.NewDomainError("FORBIDDEN", "Super admin access required")

// RevenueSource reports order totals grouped by store
type RevenueSource interface {
	RevenueByTenant(ctx context.Context) ([]sales.TenantRevenue, error)
}

// AdminService serves the platform administration endpoints
type AdminService struct {
	planRepo domain.PlanRepository
	userRepo domain.UserRepository
	revenue  RevenueSource
	logger   *zap.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(planRepo domain.PlanRepository, userRepo domain.UserRepository, revenue RevenueSource, logger *zap.Logger) *AdminService {
	return &AdminService{
		planRepo: planRepo,
		userRepo: userRepo,
		revenue:  revenue,
		logger:   logger,
	}
}

// RequireSuperAdmin rejects callers without the super_admin role
func RequireSuperAdmin(actor *domain.User) error {
	if actor == nil || !actor.IsSuperAdmin() {
		return ErrSuperAdminOnly
	}
	return nil
}

// ListPlans returns every plan
func (s *AdminService) ListPlans(ctx context.Context) ([]PlanResponse, error) {
	plans, err := s.planRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]PlanResponse, len(plans))
	for i := range plans {
		resp[i] = ToPlanResponse(&plans[i])
	}
	return resp, nil
}

// CreatePlan creates a plan; a new default plan replaces the old default
func (s *AdminService) CreatePlan(ctx context.Context, req CreatePlanRequest) (*PlanResponse, error) {
	plan, err := domain.NewPlan(req.Name, req.CommissionRate, req.MonthlyFee)
	if err != nil {
		return nil, err
	}
	plan.Description = req.Description
	if req.Modules != nil {
		plan.Modules = req.Modules
	}
	plan.IsDefault = req.IsDefault

	if plan.IsDefault {
		if err := s.planRepo.ClearDefault(ctx); err != nil {
			return nil, fmt.Errorf("clear default plan: %w", err)
		}
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	s.logger.Info("plan created", zap.String("plan", plan.Name), zap.Bool("default", plan.IsDefault))

	resp := ToPlanResponse(plan)
	return &resp, nil
}

// PlatformStats totals users, stores, orders and revenue. Commission is
// computed per store from the plan the store is on.
func (s *AdminService) PlatformStats(ctx context.Context) (*PlatformStatsResponse, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	tenants, err := s.userRepo.CountOwners(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.revenue.RevenueByTenant(ctx)
	if err != nil {
		return nil, err
	}

	stats := &PlatformStatsResponse{
		TotalUsers:      users,
		TotalTenants:    tenants,
		TotalRevenue:    decimal.Zero,
		TotalCommission: decimal.Zero,
	}
	for _, row := range rows {
		stats.TotalOrders += row.Orders
		stats.TotalRevenue = stats.TotalRevenue.Add(row.Revenue)

		owner, err := s.userRepo.FindByID(ctx, row.TenantID)
		if err != nil || owner.Plan == nil {
			continue
		}
		stats.TotalCommission = stats.TotalCommission.Add(owner.Plan.Commission(row.Revenue))
	}
	return stats, nil
}
