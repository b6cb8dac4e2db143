package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/talentbridge/backend/internal/dto"
	"github.com/talentbridge/backend/internal/service"
	"github.com/talentbridge/backend/pkg/response"
)

// UserHandler exposes the admin user-management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns a paginated user listing with search and role filtering.
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var query dto.UsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.userService.List(c.Request.Context(), &query)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, result)
}

// GetByID returns a single user.
// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, user.Public())
}

// Update edits a user's profile fields.
// PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.Error(c, 400, "VALIDATION_ERROR", msg, "")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessMessage(c, "User updated successfully", user.Public())
}

// Delete removes a user account.
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}

	response.SuccessMessage(c, "User deleted successfully", nil)
}
