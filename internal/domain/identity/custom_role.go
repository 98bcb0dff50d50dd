package identity

import (
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomRole is a named permission set a store defines for its staff
type CustomRole struct {
	shared.TenantEntity
	Name        string      `gorm:"size:100;not null"`
	Permissions Permissions `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (CustomRole) TableName() string {
	return "custom_roles"
}

// NewCustomRole creates a custom role for a store
func NewCustomRole(tenantID uuid.UUID, name string, perms Permissions) (*CustomRole, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	if perms == nil {
		perms = Permissions{}
	}
	return &CustomRole{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Permissions:  perms,
	}, nil
}

// Update renames the role and replaces its permissions
func (r *CustomRole) Update(name *string, perms Permissions) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
		}
		r.Name = n
	}
	if perms != nil {
		r.Permissions = perms
	}
	r.Touch()
	return nil
}
