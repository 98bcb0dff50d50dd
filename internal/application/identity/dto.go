package identity

import (
	"time"

	domain "github.com/bayup/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterRequest represents a store sign-up
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	FullName string `json:"full_name" binding:"max=200"`
	Nickname string `json:"nickname" binding:"max=100"`
	Phone    string `json:"phone" binding:"max=50"`
	City     string `json:"city" binding:"max=100"`
	ShopSlug string `json:"shop_slug" binding:"omitempty,slug,max=120"`
}

// LoginRequest accepts either email or username (the form field name used
// by OAuth2 password clients) plus a password
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Identifier returns the email the client sent under either field
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// IdPLoginRequest carries a token minted by the external identity provider
type IdPLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// TokenResponse is returned by every login flow
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID            uuid.UUID          `json:"id"`
	Email         string             `json:"email"`
	FullName      string             `json:"full_name"`
	Nickname      string             `json:"nickname,omitempty"`
	Phone         string             `json:"phone,omitempty"`
	City          string             `json:"city,omitempty"`
	ShopSlug      *string            `json:"shop_slug,omitempty"`
	Status        string             `json:"status"`
	Role          string             `json:"role"`
	OwnerID       *uuid.UUID         `json:"owner_id,omitempty"`
	TenantID      uuid.UUID          `json:"tenant_id"`
	IsGlobalStaff bool               `json:"is_global_staff"`
	Permissions   domain.Permissions `json:"permissions"`
	Plan          *PlanResponse      `json:"plan,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Nickname:      u.Nickname,
		Phone:         u.Phone,
		City:          u.City,
		ShopSlug:      u.ShopSlug,
		Status:        u.Status,
		Role:          u.Role,
		OwnerID:       u.OwnerID,
		TenantID:      u.TenantID(),
		IsGlobalStaff: u.IsGlobalStaff,
		Permissions:   u.Permissions,
		CreatedAt:     u.CreatedAt,
	}
	if u.Plan != nil {
		plan := ToPlanResponse(u.Plan)
		resp.Plan = &plan
	}
	return resp
}

// InviteStaffRequest represents a staff invitation
type InviteStaffRequest struct {
	Email       string             `json:"email" binding:"required,email,max=200"`
	FullName    string             `json:"full_name" binding:"max=200"`
	Role        string             `json:"role" binding:"max=50"`
	Permissions domain.Permissions `json:"permissions"`
}

// InviteStaffResponse includes the temporary password so the owner can
// hand it over when email is not configured
type InviteStaffResponse struct {
	UserResponse
	TempPassword string `json:"temp_password"`
}

// UpdateStaffRequest changes a staff member's access
type UpdateStaffRequest struct {
	Role        *string            `json:"role" binding:"omitempty,max=50"`
	Permissions domain.Permissions `json:"permissions"`
	Status      *string            `json:"status" binding:"omitempty,oneof=Activo Inactivo"`
}

// CustomRoleRequest creates or updates a custom role
type CustomRoleRequest struct {
	Name        *string            `json:"name" binding:"omitempty,max=100"`
	Permissions domain.Permissions `json:"permissions"`
}

// CustomRoleResponse represents a custom role
type CustomRoleResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Permissions domain.Permissions `json:"permissions"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ToCustomRoleResponse converts a domain CustomRole to CustomRoleResponse
func ToCustomRoleResponse(r *domain.CustomRole) CustomRoleResponse {
	return CustomRoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Permissions: r.Permissions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// CreatePlanRequest represents a new subscription plan
type CreatePlanRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Description    string          `json:"description" binding:"max=500"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	MonthlyFee     decimal.Decimal `json:"monthly_fee"`
	Modules        []string        `json:"modules"`
	IsDefault      bool            `json:"is_default"`
}

// PlanResponse represents a plan
type PlanResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	MonthlyFee     decimal.Decimal `json:"monthly_fee"`
	Modules        []string        `json:"modules"`
	IsDefault      bool            `json:"is_default"`
}

// ToPlanResponse converts a domain Plan to PlanResponse
func ToPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		CommissionRate: p.CommissionRate,
		MonthlyFee:     p.MonthlyFee,
		Modules:        p.Modules,
		IsDefault:      p.IsDefault,
	}
}

// PlatformStatsResponse aggregates platform-wide numbers for super admins
type PlatformStatsResponse struct {
	TotalUsers      int64           `json:"total_users"`
	TotalTenants    int64           `json:"total_tenants"`
	TotalOrders     int64           `json:"total_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}
