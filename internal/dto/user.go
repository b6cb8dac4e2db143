package dto

import "github.com/talentbridge/backend/internal/domain"

// UsersQuery filters and pages the admin user listing.
type UsersQuery struct {
	Search string      `form:"search"`
	Role   domain.Role `form:"role"`
	Page   int         `form:"page"`
	Limit  int         `form:"limit"`
}

// MaxPageSize bounds a single listing page; the limit is client-supplied and
// feeds a slice allocation downstream.
const MaxPageSize = 100

// Normalize applies the listing defaults and clamps the page size.
func (q *UsersQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// UsersResponse is the paginated user listing.
type UsersResponse struct {
	Total      int64               `json:"total"`
	Users      []domain.PublicUser `json:"users"`
	Pagination Pagination          `json:"pagination"`
}

// UpdateUserRequest carries the mutable profile fields. Email, role and
// account status are not editable through this endpoint.
type UpdateUserRequest struct {
	Name string `json:"name"`
}

// Validate checks the optional name against the platform name policy.
func (r *UpdateUserRequest) Validate() (bool, string) {
	if r.Name != "" && (len(r.Name) < 2 || !nameRe.MatchString(r.Name)) {
		return false, msgName
	}
	return true, ""
}
