package identity

import (
	"regexp"
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User roles
const (
	RoleSuperAdmin = "super_admin"
	RoleStoreAdmin = "admin_tienda"
	RoleStaff      = "staff"
)

// User statuses
const (
	UserStatusActive   = "Activo"
	UserStatusInactive = "Inactivo"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Permissions maps a module key to whether it is enabled for the user
type Permissions map[string]bool

// Has reports whether the permission is granted
func (p Permissions) Has(key string) bool {
	if p == nil {
		return false
	}
	return p[key]
}

// User is an account on the platform.
// A store owner is its own tenant; staff point at the owning store through OwnerID.
type User struct {
	shared.BaseAggregateRoot
	Email          string                   `gorm:"size:200;not null;uniqueIndex"`
	HashedPassword string                   `gorm:"not null"`
	FullName       string                   `gorm:"size:200"`
	Nickname       string                   `gorm:"size:100"`
	Phone          string                   `gorm:"size:50"`
	City           string                   `gorm:"size:100"`
	ShopSlug       *string                  `gorm:"size:120;uniqueIndex"`
	Status         string                   `gorm:"size:30;not null;default:'Activo'"`
	Role           string                   `gorm:"size:50;not null;default:'admin_tienda';index"`
	OwnerID        *uuid.UUID               `gorm:"type:uuid;index"`
	IsGlobalStaff  bool                     `gorm:"not null;default:false"`
	PlanID         *uuid.UUID               `gorm:"type:uuid"`
	Plan           *Plan                    `gorm:"foreignKey:PlanID"`
	Permissions    Permissions              `gorm:"serializer:json"`
	BankAccounts   []map[string]interface{} `gorm:"serializer:json"`
	SocialLinks    map[string]interface{}   `gorm:"serializer:json"`
	WhatsappLines  []map[string]interface{} `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a store owner account with a hashed password
func NewUser(email, password, fullName string) (*User, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		FullName:          strings.TrimSpace(fullName),
		Status:            UserStatusActive,
		Role:              RoleStoreAdmin,
		Permissions:       Permissions{},
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	u.Record(NewUserRegisteredEvent(u))
	return u, nil
}

// NewStaffUser creates a staff member that works for the given store
func NewStaffUser(ownerID uuid.UUID, email, password, fullName, role string, perms Permissions) (*User, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Staff must belong to a store")
	}
	u, err := NewUser(email, password, fullName)
	if err != nil {
		return nil, err
	}
	u.PullEvents()

	if role == "" {
		role = RoleStaff
	}
	if role == RoleSuperAdmin {
		return nil, shared.NewDomainError("INVALID_ROLE", "Staff cannot be super admin")
	}
	u.OwnerID = &ownerID
	u.Role = role
	if perms != nil {
		u.Permissions = perms
	}
	return u, nil
}

// TenantID returns the id of the store this user acts for
func (u *User) TenantID() uuid.UUID {
	if u.OwnerID != nil {
		return *u.OwnerID
	}
	return u.ID
}

// IsOwner reports whether the user owns a store
func (u *User) IsOwner() bool {
	return u.OwnerID == nil
}

// IsSuperAdmin reports whether the user administers the platform
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsActive reports whether the user may sign in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < minPasswordLength {
		return shared.NewDomainErrorf("INVALID_PASSWORD", "Password must be at least %d characters", minPasswordLength)
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.HashedPassword = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

// AssignPlan attaches a subscription plan
func (u *User) AssignPlan(plan *Plan) {
	if plan == nil {
		return
	}
	u.PlanID = &plan.ID
	u.Plan = plan
	u.Touch()
}

// UpdateAccess changes role, permissions and status of a staff member
func (u *User) UpdateAccess(role *string, perms Permissions, status *string) error {
	if role != nil {
		if *role == RoleSuperAdmin {
			return shared.NewDomainError("INVALID_ROLE", "Staff cannot be super admin")
		}
		u.Role = *role
	}
	if perms != nil {
		u.Permissions = perms
	}
	if status != nil {
		if *status != UserStatusActive && *status != UserStatusInactive {
			return shared.NewDomainErrorf("INVALID_STATUS", "Unknown status %q", *status)
		}
		u.Status = *status
	}
	u.MarkModified()
	return nil
}

// SetShopSlug sets the public storefront slug
func (u *User) SetShopSlug(slug string) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		u.ShopSlug = nil
		return
	}
	u.ShopSlug = &slug
}

// DisplayName returns the best available name
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Email
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
