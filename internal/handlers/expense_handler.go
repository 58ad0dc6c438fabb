package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostel-service/internal/services"
	"github.com/hostelhub/hostel-service/internal/utils"
)

type ExpenseHandler struct {
	BaseHandler
	service services.ExpenseService
}

func NewExpenseHandler(service services.ExpenseService, logger utils.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Overview returns the selected month, the month before it, and the
// fee income collected in both so balances can be derived.
func (h *ExpenseHandler) Overview(c *gin.Context) {
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

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req services.ExpenseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	adminID, _ := utils.GetAdminID(c)
	expense, err := h.service.Create(c.Request.Context(), &req, adminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Expense added successfully", "expense": expense})
}

// DeleteExpense removes an expense addressed by query id.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	raw := c.Query("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid expense id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Expense deleted successfully"})
}

// ExportReport serves a downloadable expense workbook for a month.
func (h *ExpenseHandler) ExportReport(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month"})
		return
	}

	data, filename, err := h.service.ExportReport(c.Request.Context(), year, month)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
