package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostel-service/internal/services"
	"github.com/hostelhub/hostel-service/internal/utils"
	"github.com/hostelhub/hostel-service/internal/validator"
)

// ErrorResponse is the envelope returned on any failed request.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Debug(msg, "path", c.Request.URL.Path)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Error(msg, "error", err, "path", c.Request.URL.Path)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps service-layer errors onto HTTP status codes.
// Validation failures carry their per-field messages in the details.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, ve := range verrs {
			details = append(details, ve.Message)
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: details})
		return
	}

	switch {
	case errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrSalaryNotFound),
		errors.Is(err, services.ErrExpenseNotFound),
		errors.Is(err, services.ErrRegistrationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrSalaryDuplicate),
		errors.Is(err, services.ErrRegistrationDuplicate),
		errors.Is(err, services.ErrDuplicateName):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrRoomFull),
		errors.Is(err, services.ErrRoomOutOfRange),
		errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
