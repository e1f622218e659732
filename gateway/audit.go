package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type auditQuery struct {
	Limit int64 `form:"limit" binding:"omitempty,min=1,max=500"`
}

func (g *Gateway) listAuditLogs(c *gin.Context) {
	var q auditQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	if q.Limit == 0 {
		q.Limit = 50
	}

	entityID := c.Param("entity_id")
	logs, err := g.services.Audit.GetAuditLogs(c.Request.Context(), entityID, q.Limit)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entity_id": entityID, "logs": logs})
}
