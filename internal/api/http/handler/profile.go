package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/service"
)

// ProfileService defines profile and avatar operations.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (model.User, error)
	Update(ctx context.Context, actor model.User, params service.UpdateProfileParams) (model.User, error)
	UploadAvatar(ctx context.Context, actor model.User, reader io.Reader, size int64, contentType string) (model.User, error)
	Avatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error)
}

// Profile handles the profile endpoints.
type Profile struct {
	profileService ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates a new Profile handler.
func NewProfile(profileService ProfileService, contextManager model.ContextManager, logger *logger.Logger) *Profile {
	return &Profile{
		profileService: profileService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Get returns another user's public profile.
func (h *Profile) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Major     *string `json:"major"`
	Year      *string `json:"year"`
	Residence *string `json:"residence"`
}

// Update changes the authenticated user's own profile fields.
func (h *Profile) Update(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	updated, err := h.profileService.Update(c.Request.Context(), user, service.UpdateProfileParams{
		Name:      req.Name,
		Major:     req.Major,
		Year:      req.Year,
		Residence: req.Residence,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(updated))
}

// UploadAvatar stores a new avatar image for the authenticated user.
func (h *Profile) UploadAvatar(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	updated, err := h.profileService.UploadAvatar(c.Request.Context(), user, file, fileHeader.Size, contentType)
	if err != nil {
		h.logger.Error("Profile handler: avatar upload failed",
			"user_id", user.ID.String(),
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(updated))
}

// Avatar streams a user's avatar image.
func (h *Profile) Avatar(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	reader, err := h.profileService.Avatar(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Error("Profile handler: avatar stream interrupted",
			"user_id", userID.String(),
			"error", err.Error())
	}
}
