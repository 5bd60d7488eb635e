package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/middleware"
)

type InstrumentHandler struct {
	instrumentSvc portssvc.InstrumentSvcFacade
}

func NewInstrumentHandler(instrumentSvc portssvc.InstrumentSvcFacade) *InstrumentHandler {
	return &InstrumentHandler{instrumentSvc: instrumentSvc}
}

// CreateInstrument godoc
// @Summary Register an instrument
// @Description Registers a new currency or security instrument
// @Tags instruments
// @Accept json
// @Produce json
// @Param instrument body dto.CreateInstrumentRequest true "Instrument details"
// @Success 201 {object} dto.InstrumentResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /instruments [post]
func (h *InstrumentHandler) CreateInstrument(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req dto.CreateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instrument, err := h.instrumentSvc.CreateInstrument(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Instrument code already registered"})
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to create instrument", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create instrument"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToInstrumentResponse(instrument))
}

// GetInstrument godoc
// @Summary Get an instrument
// @Description Retrieves an instrument by ID
// @Tags instruments
// @Produce json
// @Param instrumentID path string true "Instrument ID"
// @Success 200 {object} dto.InstrumentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /instruments/{instrumentID} [get]
func (h *InstrumentHandler) GetInstrument(c *gin.Context) {
	instrument, err := h.instrumentSvc.GetInstrumentByID(c.Request.Context(), c.Param("instrumentID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Instrument not found"})
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to get instrument", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get instrument"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInstrumentResponse(instrument))
}

// ListInstruments godoc
// @Summary List instruments
// @Description Retrieves all registered instruments
// @Tags instruments
// @Produce json
// @Success 200 {array} dto.InstrumentResponse
// @Security BearerAuth
// @Router /instruments [get]
func (h *InstrumentHandler) ListInstruments(c *gin.Context) {
	instruments, err := h.instrumentSvc.ListInstruments(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list instruments", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list instruments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListInstrumentResponse(instruments))
}

func registerInstrumentRoutes(rg *gin.RouterGroup, instrumentSvc portssvc.InstrumentSvcFacade) {
	h := NewInstrumentHandler(instrumentSvc)
	instruments := rg.Group("/instruments")
	{
		instruments.POST("", h.CreateInstrument)
		instruments.GET("", h.ListInstruments)
		instruments.GET("/:instrumentID", h.GetInstrument)
	}
}
