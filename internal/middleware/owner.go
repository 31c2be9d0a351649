package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyOwnerID is the gin context key the owner middleware sets.
const ContextKeyOwnerID = "owner_id"

// OwnerHeader carries the calling account's identity. Authentication sits in
// front of this service; the gateway injects the header after verifying the
// caller.
const OwnerHeader = "X-Owner-ID"

// OwnerContext requires a valid X-Owner-ID header on every request and makes
// the parsed UUID available to handlers.
func OwnerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(OwnerHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "MISSING_OWNER", "message": "X-Owner-ID header required"},
			})
			return
		}
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_OWNER", "message": "X-Owner-ID must be a UUID"},
			})
			return
		}
		c.Set(ContextKeyOwnerID, ownerID)
		c.Next()
	}
}

// GetOwnerID extracts the owner ID set by OwnerContext.
func GetOwnerID(c *gin.Context) (uuid.UUID, error) {
	v, exists := c.Get(ContextKeyOwnerID)
	if !exists {
		return uuid.Nil, errors.New("owner context missing")
	}
	ownerID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("owner context has wrong type")
	}
	return ownerID, nil
}
