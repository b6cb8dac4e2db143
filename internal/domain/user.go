package domain

import "time"

// Role is the closed set of account roles on the platform.
type Role string

const (
	RoleTrainee      Role = "TRAINEE"
	RoleEmployer     Role = "EMPLOYER"
	RoleOrganization Role = "ORGANIZATION"
	RoleAdmin        Role = "ADMIN"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleTrainee, RoleEmployer, RoleOrganization, RoleAdmin:
		return true
	}
	return false
}

// AccountStatus tracks the one-way UNVERIFIED -> VERIFIED transition.
type AccountStatus string

const (
	StatusUnverified AccountStatus = "UNVERIFIED"
	StatusVerified   AccountStatus = "VERIFIED"
)

// User is the identity record owned by the user repository.
// PasswordHash must never be serialized to a client.
type User struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"-"`
	Role          Role          `json:"role"`
	AccountStatus AccountStatus `json:"accountStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// PublicUser is the projection returned to clients after login and on
// user-management reads.
type PublicUser struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Role          Role          `json:"role"`
	AccountStatus AccountStatus `json:"accountStatus,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Public returns the client-safe projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		AccountStatus: u.AccountStatus,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
