package persistence

import (
	"context"
	"strings"

	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error)
}

// Delete deletes a user by ID
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&identity.User{}, "id = ?", id))
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// FindByShopSlug finds a store owner by storefront slug
func (r *GormUserRepository) FindByShopSlug(ctx context.Context, slug string) (*identity.User, error) {
	return r.first(ctx, "shop_slug = ? AND owner_id IS NULL", slug)
}

func (r *GormUserRepository) first(ctx context.Context, query string, args ...interface{}) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Preload("Plan").
		Where(query, args...).
		First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// ExistsByEmail checks if an email already exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindStaff returns the staff accounts owned by the store
func (r *GormUserRepository) FindStaff(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&identity.User{}).Where("owner_id = ?", tenantID)
		q = applyEquals(q, filter, "role", "status")
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			q = q.Where("LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := make([]identity.User, 0)
	if err := query().Scopes(paginate(filter, UserSortFields)).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindStaffMember returns one staff account of the store
func (r *GormUserRepository) FindStaffMember(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	return r.first(ctx, "owner_id = ? AND id = ?", tenantID, id)
}

// CountOwners counts store owner accounts
func (r *GormUserRepository) CountOwners(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.User{}).
		Where("owner_id IS NULL AND role = ?", identity.RoleStoreAdmin).
		Count(&count).Error
	return count, err
}

// Count counts all accounts
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.User{}).Count(&count).Error
	return count, err
}

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Create creates a plan
func (r *GormPlanRepository) Create(ctx context.Context, plan *identity.Plan) error {
	return translateError(r.db.WithContext(ctx).Create(plan).Error)
}

// FindByID finds a plan by ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Plan, error) {
	var plan identity.Plan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &plan, nil
}

// FindDefault returns the plan flagged as default
func (r *GormPlanRepository) FindDefault(ctx context.Context) (*identity.Plan, error) {
	var plan identity.Plan
	if err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		Order("created_at ASC").
		First(&plan).Error; err != nil {
		return nil, translateError(err)
	}
	return &plan, nil
}

// FindAll lists every plan
func (r *GormPlanRepository) FindAll(ctx context.Context) ([]identity.Plan, error) {
	plans := make([]identity.Plan, 0)
	if err := r.db.WithContext(ctx).Order("monthly_fee ASC, name ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// ClearDefault unsets is_default on every plan
func (r *GormPlanRepository) ClearDefault(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&identity.Plan{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

// GormCustomRoleRepository implements CustomRoleRepository using GORM
type GormCustomRoleRepository struct {
	*GormTenantRepository[identity.CustomRole]
}

// NewGormCustomRoleRepository creates a new GormCustomRoleRepository
func NewGormCustomRoleRepository(db *gorm.DB) *GormCustomRoleRepository {
	return &GormCustomRoleRepository{
		GormTenantRepository: NewGormTenantRepository[identity.CustomRole](db, CommonSortFields, "name"),
	}
}

// FindAll lists the custom roles of a store by name
func (r *GormCustomRoleRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]identity.CustomRole, error) {
	roles := make([]identity.CustomRole, 0)
	if err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Order("name ASC").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

var (
	_ identity.UserRepository       = (*GormUserRepository)(nil)
	_ identity.PlanRepository       = (*GormPlanRepository)(nil)
	_ identity.CustomRoleRepository = (*GormCustomRoleRepository)(nil)
)
