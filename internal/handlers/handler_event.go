package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/middleware"
)

type EventHandler struct {
	eventSvc portssvc.EventSvcFacade
}

func NewEventHandler(eventSvc portssvc.EventSvcFacade) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// IngestEvent godoc
// @Summary Ingest a transaction event
// @Description Stores a transaction event with its legs. Re-submitting the same upstream record returns the stored event instead of creating a duplicate.
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.CreateEventRequest true "Event and legs"
// @Success 200 {object} dto.EventResponse "Already ingested"
// @Success 201 {object} dto.EventResponse "Newly created"
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) IngestEvent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, created, err := h.eventSvc.IngestEvent(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAmountNotInteger):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access to account denied"})
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to ingest event", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest event"})
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToEventResponse(event, nil))
}

// GetEvent godoc
// @Summary Get an event
// @Description Retrieves one of the authenticated user's events with its legs
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /events/{eventID} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	event, legs, err := h.eventSvc.GetEventByID(c.Request.Context(), userID, c.Param("eventID"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access to event denied"})
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to get event", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get event"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event, legs))
}

// ListEvents godoc
// @Summary List events
// @Description Retrieves a page of the authenticated user's non-deleted events
// @Tags events
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.EventResponse
// @Security BearerAuth
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var params dto.ListEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.eventSvc.ListEvents(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEventResponse(events))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Soft-deletes one of the authenticated user's events; its legs stop counting toward balances
// @Tags events
// @Param eventID path string true "Event ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Security BearerAuth
// @Router /events/{eventID} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	err := h.eventSvc.DeleteEvent(c.Request.Context(), userID, c.Param("eventID"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access to event denied"})
		case errors.Is(err, services.ErrEventDeleted):
			c.JSON(http.StatusGone, gin.H{"error": "Event already deleted"})
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to delete event", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func registerEventRoutes(rg *gin.RouterGroup, eventSvc portssvc.EventSvcFacade) {
	h := NewEventHandler(eventSvc)
	events := rg.Group("/events")
	{
		events.POST("", h.IngestEvent)
		events.GET("", h.ListEvents)
		events.GET("/:eventID", h.GetEvent)
		events.DELETE("/:eventID", h.DeleteEvent)
	}
}
