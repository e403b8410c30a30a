package domain

import (
	"context"
	"time"
)

// User roles. The role is resolved once per request from the users table,
// never from the JWT claims. "admin" doubles as the staff flag; "interviewer"
// is the capability marker for conducting interviews.
const (
	RoleCandidate   = "candidate"
	RoleInterviewer = "interviewer"
	RoleAdmin       = "admin"
)

type User struct {
	ID        string    `json:"id"` // UUID issued by the external auth service
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsStaff reports whether the role carries staff privileges
func IsStaff(role string) bool {
	return role == RoleAdmin
}

// CanConductInterviews reports whether the role may create and run interviews
func CanConductInterviews(role string) bool {
	return role == RoleAdmin || role == RoleInterviewer
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type AuthUsecase interface {
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
