package identity

import (
	"github.com/bayup/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserRegistered = "UserRegistered"
	EventTypeStaffInvited   = "StaffInvited"
)

// UserRegisteredEvent is published when a store owner signs up
type UserRegisteredEvent struct {
	shared.EventHeader
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		EventHeader: shared.NewEventHeader(EventTypeUserRegistered, AggregateTypeUser, user.ID, user.TenantID()),
		Email:       user.Email,
		FullName:    user.FullName,
	}
}

// StaffInvitedEvent is published when a store invites a staff member
type StaffInvitedEvent struct {
	shared.EventHeader
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	TempPassword string `json:"-"`
}

// NewStaffInvitedEvent creates a new StaffInvitedEvent
func NewStaffInvitedEvent(user *User, tempPassword string) *StaffInvitedEvent {
	return &StaffInvitedEvent{
		EventHeader:  shared.NewEventHeader(EventTypeStaffInvited, AggregateTypeUser, user.ID, user.TenantID()),
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         user.Role,
		TempPassword: tempPassword,
	}
}
