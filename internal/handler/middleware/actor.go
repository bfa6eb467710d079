package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	ctxUserIDKey = "actor_user_id"
	ctxRoleKey   = "actor_role"
)

// Actor reads the caller identity from the X-User-ID and X-User-Role headers
// set by the edge proxy. Requests without a parsable user ID pass through
// anonymous; route-level guards decide whether that is acceptable.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(ctxUserIDKey, id)
			}
		}
		if role := c.GetHeader("X-User-Role"); role != "" {
			c.Set(ctxRoleKey, role)
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetRole(c *gin.Context) string {
	v, exists := c.Get(ctxRoleKey)
	if !exists {
		return ""
	}
	role, _ := v.(string)
	return role
}

func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}
		if GetRole(c) != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin privileges required",
			})
			return
		}
		c.Next()
	}
}
