package enrollment

import (
	"errors"
	"net/http"
	"strconv"

	"gymflow/internal/api"
	"gymflow/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Enroll godoc
// @Summary      Enroll in class
// @Description  Secures a spot in a class. Refused when the class is full,
// @Description  already started, or the member is already enrolled.
// @Tags         enrollments
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      201      {object}  Enrollment
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ConflictResponse
// @Router       /classes/{classID}/enroll [post]
func (h *Handler) Enroll(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	e, err := h.service.Enroll(c.Request.Context(), memberID, classID)
	if err != nil {
		var full *CapacityError
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		case errors.Is(err, ErrClassStarted):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Class has already started"})
		case errors.Is(err, ErrAlreadyEnrolled):
			c.JSON(http.StatusConflict, gin.H{"error": "Already enrolled in this class"})
		case errors.As(err, &full):
			c.JSON(http.StatusConflict, api.ConflictResponse{
				Error:    "Class is full",
				Kind:     "class_full",
				Capacity: full.Capacity,
				Enrolled: full.Enrolled,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll"})
		}
		return
	}

	c.JSON(http.StatusCreated, e)
}

// Cancel godoc
// @Summary      Cancel enrollment
// @Description  Gives up a spot. Allowed only before the class starts.
// @Tags         enrollments
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /classes/{classID}/enroll [delete]
func (h *Handler) Cancel(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	err = h.service.Cancel(c.Request.Context(), memberID, classID)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		case errors.Is(err, ErrNotEnrolled):
			c.JSON(http.StatusNotFound, gin.H{"error": "Not enrolled in this class"})
		case errors.Is(err, ErrClassStarted):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Class has already started"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel enrollment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Enrollment cancelled"})
}

// ListMine godoc
// @Summary      My enrollments
// @Tags         enrollments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   EnrollmentWithClass
// @Failure      500  {object}  api.ErrorResponse
// @Router       /me/enrollments [get]
func (h *Handler) ListMine(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	enrollments, err := h.service.ListMine(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch enrollments"})
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// BrowseClasses godoc
// @Summary      Browse upcoming classes
// @Description  Lists future classes with live headcounts and whether the
// @Description  caller already holds a spot.
// @Tags         enrollments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   AvailableClass
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes/upcoming [get]
func (h *Handler) BrowseClasses(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	classes, err := h.service.BrowseClasses(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}
