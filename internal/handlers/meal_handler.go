package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostel-service/internal/services"
	"github.com/hostelhub/hostel-service/internal/utils"
)

type MealHandler struct {
	BaseHandler
	service services.MealService
}

func NewMealHandler(service services.MealService, logger utils.Logger) *MealHandler {
	return &MealHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Overview serves both the admin and the public meals view.
func (h *MealHandler) Overview(c *gin.Context) {
	meals, err := h.service.Overview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, meals)
}

func (h *MealHandler) UpdateTimings(c *gin.Context) {
	var req services.MealTimingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	timings, err := h.service.UpdateTimings(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meal timings updated successfully", "timings": timings})
}

func (h *MealHandler) UpdateMenu(c *gin.Context) {
	var req services.MealMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	menu, err := h.service.UpdateMenu(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meal menu updated successfully", "menu": menu})
}
