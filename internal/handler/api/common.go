package api

import (
	"strconv"

	"storefront/internal/infra"

	"github.com/gin-gonic/gin"
)

func parsePage(c *gin.Context) (limit, offset int32) {
	limit = 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			limit = int32(v)
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			offset = int32(v)
		}
	}
	return limit, offset
}

func isNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}
