package trainer

import (
	"errors"
	"net/http"
	"strconv"

	"gymflow/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateTrainer godoc
// @Summary      Register trainer
// @Description  Registers a new trainer. Admin only.
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTrainerRequest  true  "Trainer data"
// @Success      201      {object}  Trainer
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/trainers [post]
func (h *Handler) CreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register trainer"})
		return
	}

	c.JSON(http.StatusCreated, t)
}

// ListTrainers godoc
// @Summary      List trainers
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Trainer
// @Failure      500  {object}  api.ErrorResponse
// @Router       /trainers [get]
func (h *Handler) ListTrainers(c *gin.Context) {
	trainers, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trainers"})
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// AddAvailability godoc
// @Summary      Add availability window
// @Description  Declares a recurring weekly window for a trainer. Windows on
// @Description  the same weekday must not overlap; touching windows are allowed.
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        trainerID  path      int                     true  "Trainer ID"
// @Param        request    body      AddAvailabilityRequest  true  "Availability window"
// @Success      201        {object}  AvailabilityResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /trainers/{trainerID}/availability [post]
func (h *Handler) AddAvailability(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	var req AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	window, err := h.service.AddAvailability(c.Request.Context(), trainerID, req)
	if err != nil {
		var overlap *OverlapError
		switch {
		case errors.Is(err, ErrInvalidDayOfWeek), errors.Is(err, ErrInvalidClockTime), errors.Is(err, schedule.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
		case errors.As(err, &overlap):
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Availability window overlaps an existing one",
				"existing": ToAvailabilityResponse(&overlap.Existing),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add availability"})
		}
		return
	}

	c.JSON(http.StatusCreated, ToAvailabilityResponse(window))
}

// ListAvailability godoc
// @Summary      List availability windows
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {array}   AvailabilityResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /trainers/{trainerID}/availability [get]
func (h *Handler) ListAvailability(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	windows, err := h.service.ListAvailability(c.Request.Context(), trainerID)
	if err != nil {
		if errors.Is(err, ErrTrainerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch availability"})
		return
	}

	out := make([]AvailabilityResponse, len(windows))
	for i := range windows {
		out[i] = ToAvailabilityResponse(&windows[i])
	}

	c.JSON(http.StatusOK, out)
}

// RemoveAvailability godoc
// @Summary      Remove availability window
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Param        windowID   path      int  true  "Availability window ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /trainers/{trainerID}/availability/{windowID} [delete]
func (h *Handler) RemoveAvailability(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	windowID, err := strconv.Atoi(c.Param("windowID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window ID"})
		return
	}

	err = h.service.RemoveAvailability(c.Request.Context(), trainerID, windowID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
		case errors.Is(err, ErrWindowNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Availability window not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove availability"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability window removed"})
}
