package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/service"
)

// EventService defines event listing, creation and RSVP operations.
type EventService interface {
	ListUpcoming(ctx context.Context) ([]model.Event, error)
	Create(ctx context.Context, actor model.User, params service.CreateEventParams) (model.Event, error)
	RSVP(ctx context.Context, actor model.User, eventID uuid.UUID, status model.RSVPStatus) error
}

// Event handles the event endpoints.
type Event struct {
	eventService   EventService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewEvent creates a new Event handler.
func NewEvent(eventService EventService, contextManager model.ContextManager, logger *logger.Logger) *Event {
	return &Event{
		eventService:   eventService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// ListUpcoming returns events that have not started yet.
func (h *Event) ListUpcoming(c *gin.Context) {
	events, err := h.eventService.ListUpcoming(c.Request.Context())
	if err != nil {
		h.logger.Error("Event handler: failed to list events", "error", err.Error())
		handleError(c, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

type createEventRequest struct {
	ClubID      uuid.UUID `json:"clubId" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
}

// Create schedules a club event.
func (h *Event) Create(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clubId, title and startsAt are required"})
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), user, service.CreateEventParams{
		ClubID:      req.ClubID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(event))
}

type rsvpRequest struct {
	Status model.RSVPStatus `json:"status" binding:"required"`
}

// RSVP records the authenticated user's attendance answer.
func (h *Event) RSVP(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := h.eventService.RSVP(c.Request.Context(), user, eventID, req.Status); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
