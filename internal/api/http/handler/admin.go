package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
)

// AdminService defines superAdmin-only user management operations.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	VerifyUser(ctx context.Context, userID uuid.UUID) (model.User, error)
	SetRole(ctx context.Context, userID uuid.UUID, role model.Role) (model.User, error)
}

// Admin handles the superAdmin endpoints. The routes are gated at
// superAdmin before these run.
type Admin struct {
	adminService AdminService
	logger       *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(adminService AdminService, logger *logger.Logger) *Admin {
	return &Admin{adminService: adminService, logger: logger}
}

// ListUsers returns every user account.
func (h *Admin) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("Admin handler: failed to list users", "error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

// VerifyUser marks a user as campus-verified.
func (h *Admin) VerifyUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.adminService.VerifyUser(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type setRoleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

// SetRole changes a user's role.
func (h *Admin) SetRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}

	user, err := h.adminService.SetRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
