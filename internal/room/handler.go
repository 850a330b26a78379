package room

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateRoom godoc
// @Summary      Create room
// @Description  Adds a new room. Admin only.
// @Tags         rooms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRoomRequest  true  "Room data"
// @Success      201      {object}  Room
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rm, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, rm)
}

// ListRooms godoc
// @Summary      List rooms
// @Tags         rooms
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Room
// @Failure      500  {object}  api.ErrorResponse
// @Router       /rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// UpdateRoom godoc
// @Summary      Update room
// @Description  Updates room fields; absent fields are left untouched. Admin only.
// @Tags         rooms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        roomID   path      int                true  "Room ID"
// @Param        request  body      UpdateRoomRequest  true  "Fields to update"
// @Success      200      {object}  Room
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/rooms/{roomID} [patch]
func (h *Handler) UpdateRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("roomID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rm, err := h.service.Update(c.Request.Context(), roomID, req)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
		return
	}

	c.JSON(http.StatusOK, rm)
}

// DeleteRoom godoc
// @Summary      Delete room
// @Description  Deletes a room unless classes are still scheduled in it. Admin only.
// @Tags         rooms
// @Security     BearerAuth
// @Produce      json
// @Param        roomID  path      int  true  "Room ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      409     {object}  api.ErrorResponse
// @Router       /admin/rooms/{roomID} [delete]
func (h *Handler) DeleteRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("roomID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	err = h.service.Delete(c.Request.Context(), roomID)
	if err != nil {
		var inUse *InUseError
		switch {
		case errors.Is(err, ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.As(err, &inUse):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Room still has scheduled classes",
				"classes": inUse.Classes,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
