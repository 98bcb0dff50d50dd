package identity

import (
	"context"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user. A duplicate email returns shared.ErrAlreadyExists
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a user by ID, with its plan loaded
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email, with its plan loaded
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByShopSlug finds a store owner by storefront slug
	FindByShopSlug(ctx context.Context, slug string) (*User, error)

	// ExistsByEmail checks if an email already exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindStaff returns the staff of a store
	FindStaff(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, int64, error)

	// FindStaffMember returns one staff member of a store
	FindStaffMember(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// CountOwners counts store owner accounts
	CountOwners(ctx context.Context) (int64, error)

	// Count counts all accounts
	Count(ctx context.Context) (int64, error)
}

// PlanRepository defines the interface for plan persistence
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	// FindDefault returns the plan new stores are attached to
	FindDefault(ctx context.Context) (*Plan, error)
	FindAll(ctx context.Context) ([]Plan, error)
	// ClearDefault unsets is_default on every plan
	ClearDefault(ctx context.Context) error
}

// CustomRoleRepository defines the interface for custom role persistence
type CustomRoleRepository interface {
	Create(ctx context.Context, role *CustomRole) error
	Update(ctx context.Context, role *CustomRole) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*CustomRole, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]CustomRole, error)
}
