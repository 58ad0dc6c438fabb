package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostel-service/internal/services"
	"github.com/hostelhub/hostel-service/internal/utils"
)

type RoomHandler struct {
	BaseHandler
	service services.RoomService
}

func NewRoomHandler(service services.RoomService, logger utils.Logger) *RoomHandler {
	return &RoomHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListRooms returns every room with its occupants.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// Availability returns the aggregate occupancy picture.
func (h *RoomHandler) Availability(c *gin.Context) {
	availability, err := h.service.Availability(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, availability)
}
