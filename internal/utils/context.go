package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostel-service/internal/models"
)

const (
	ContextAdminIDKey = "admin_id"
	ContextAdminKey   = "admin"
)

// GetAdminID extracts the authenticated admin's id from the gin context.
func GetAdminID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextAdminIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetAdmin extracts the authenticated admin from the gin context.
func GetAdmin(c *gin.Context) (*models.Admin, bool) {
	v, exists := c.Get(ContextAdminKey)
	if !exists {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok
}
