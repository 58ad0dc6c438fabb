package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostel-service/internal/services"
	"github.com/hostelhub/hostel-service/internal/utils"
)

type EmployeeHandler struct {
	BaseHandler
	service services.EmployeeService
}

func NewEmployeeHandler(service services.EmployeeService, logger utils.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req services.EmployeeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	id, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Employee added successfully", "employee_id": id})
}

func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.EmployeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Employee updated successfully"})
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Employee deleted successfully"})
}

// ListSalaries returns one employee's payment history.
func (h *EmployeeHandler) ListSalaries(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Salaries(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PaySalary records one monthly payment for an employee. A second
// payment for the same month is rejected.
func (h *EmployeeHandler) PaySalary(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.SalaryPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	adminID, _ := utils.GetAdminID(c)
	if err := h.service.PaySalary(c.Request.Context(), id, &req, adminID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Salary payment recorded successfully"})
}

func (h *EmployeeHandler) UpdateSalary(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.SalaryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.UpdateSalary(c.Request.Context(), id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Salary record updated successfully"})
}

func (h *EmployeeHandler) DeleteSalary(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSalary(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Salary record deleted successfully"})
}

// MonthlySummary reports who has and hasn't been paid for a month.
func (h *EmployeeHandler) MonthlySummary(c *gin.Context) {
	monthYear := c.Param("month_year")

	summary, err := h.service.MonthlySummary(c.Request.Context(), monthYear)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *EmployeeHandler) YearlySummary(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
		return
	}

	summary, err := h.service.YearlySummary(c.Request.Context(), year)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AvailableMonths lists the months and years that have payments.
func (h *EmployeeHandler) AvailableMonths(c *gin.Context) {
	months, years, err := h.service.AvailableMonths(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": months, "years": years})
}
