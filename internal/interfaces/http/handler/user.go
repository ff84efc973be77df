package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/pos/backend/internal/application/identity"
)

// UserHandler handles user management API endpoints. All routes are
// admin-only.
type UserHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *identityapp.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Create creates a new user account
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Get retrieves a user by ID
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// List lists user accounts
func (h *UserHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	if role := c.Query("role"); role != "" {
		if filter.Filters == nil {
			filter.Filters = map[string]interface{}{}
		}
		filter.Filters["role"] = role
	}
	if isActive := parseBoolQuery(c, "is_active"); isActive != nil {
		if filter.Filters == nil {
			filter.Filters = map[string]interface{}{}
		}
		filter.Filters["is_active"] = *isActive
	}

	users, total, err := h.authService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}
