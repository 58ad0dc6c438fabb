package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostel-service/internal/services"
	"github.com/hostelhub/hostel-service/internal/utils"
)

type FeeHandler struct {
	BaseHandler
	service services.FeeService
}

func NewFeeHandler(service services.FeeService, logger utils.Logger) *FeeHandler {
	return &FeeHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CollectFee records a fee payment and recomputes the student's
// month-to-date status.
func (h *FeeHandler) CollectFee(c *gin.Context) {
	var req services.FeeCollectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Collect(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Fee collected successfully"})
}

// Overview returns the selected month, the month before it, and the
// 12-month totals. Month and year default to now.
func (h *FeeHandler) Overview(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}

	overview, err := h.service.Overview(c.Request.Context(), year, month)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// ListRecords returns the full unpaginated payment history.
func (h *FeeHandler) ListRecords(c *gin.Context) {
	records, err := h.service.ListRecords(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fee_records": records})
}
