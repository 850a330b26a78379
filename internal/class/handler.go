package class

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymflow/internal/api"
	"gymflow/internal/schedule"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func conflictBody(conflict *ConflictError) api.ConflictResponse {
	msg := "Trainer is busy during this window"
	if conflict.Kind == RoomBusy {
		msg = "Room is occupied during this window"
	}
	return api.ConflictResponse{
		Error:            msg,
		Kind:             string(conflict.Kind),
		ConflictingClass: conflict.ClassID,
	}
}

// ScheduleClass godoc
// @Summary      Schedule class
// @Description  Books a 90-minute class. Refused when the trainer or the room
// @Description  already has an overlapping class; touching windows are allowed.
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ScheduleClassRequest  true  "Class data"
// @Success      201      {object}  Class
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ConflictResponse
// @Router       /admin/classes [post]
func (h *Handler) ScheduleClass(c *gin.Context) {
	var req ScheduleClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Schedule(c.Request.Context(), req)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateClass godoc
// @Summary      Update class
// @Description  Patches a class. Omitted fields keep their stored values; the
// @Description  conflict scan runs against the effective values and never
// @Description  counts the class against itself.
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        classID  path      int                 true  "Class ID"
// @Param        request  body      UpdateClassRequest  true  "Fields to change"
// @Success      200      {object}  Class
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ConflictResponse
// @Router       /admin/classes/{classID} [patch]
func (h *Handler) UpdateClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), classID, req)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) writeScheduleError(c *gin.Context, err error) {
	var conflict *ConflictError
	switch {
	case errors.Is(err, ErrInvalidStart), errors.Is(err, ErrInvalidCapacity),
		errors.Is(err, ErrEmptyPatch), errors.Is(err, schedule.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrClassNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
	case errors.Is(err, ErrTrainerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Trainer not found"})
	case errors.Is(err, ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, conflictBody(conflict))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save class"})
	}
}

// DeleteClass godoc
// @Summary      Delete class
// @Description  Removes a class. Refused while members are enrolled in it.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/classes/{classID} [delete]
func (h *Handler) DeleteClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	err = h.service.Delete(c.Request.Context(), classID)
	if err != nil {
		var integrity *IntegrityError
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		case errors.As(err, &integrity):
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Class still has enrolled members",
				"enrolled": integrity.Enrollments,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete class"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class deleted"})
}

// ListClasses godoc
// @Summary      List classes
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ClassWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// GetClass godoc
// @Summary      Get class
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      int  true  "Class ID"
// @Success      200      {object}  Class
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /classes/{classID} [get]
func (h *Handler) GetClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch class"})
		return
	}

	c.JSON(http.StatusOK, cl)
}

// TrainerSchedule godoc
// @Summary      Trainer schedule
// @Description  Lists a trainer's classes starting inside the requested range.
// @Description  Defaults to the next 7 days.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int     true   "Trainer ID"
// @Param        from       query     string  false  "Range start (RFC 3339)"
// @Param        to         query     string  false  "Range end (RFC 3339)"
// @Success      200        {array}   Class
// @Failure      400        {object}  api.ErrorResponse
// @Router       /trainers/{trainerID}/schedule [get]
func (h *Handler) TrainerSchedule(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trainer ID"})
		return
	}

	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp"})
			return
		}
	}

	to := from.AddDate(0, 0, 7)
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp"})
			return
		}
	}

	classes, err := h.service.GetTrainerSchedule(c.Request.Context(), trainerID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// AvailableTrainers godoc
// @Summary      Find available trainers
// @Description  Lists trainer IDs with no class overlapping the probe window.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        starts_at  query     string  true   "Window start (RFC 3339)"
// @Param        ends_at    query     string  false  "Window end, defaults to one class duration"
// @Success      200        {object}  map[string][]int
// @Failure      400        {object}  api.ErrorResponse
// @Router       /trainers/available [get]
func (h *Handler) AvailableTrainers(c *gin.Context) {
	var req AvailableTrainersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trainers, err := h.service.FindAvailableTrainers(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidStart) || errors.Is(err, schedule.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find available trainers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trainer_ids": trainers})
}
