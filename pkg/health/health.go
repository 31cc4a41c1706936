package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// swagger:route GET /health health
//
// Service health status
//
// responses:
//
//	200: Health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "up",
	})
}

// swagger:response Health
type _ struct {
	//in: body
	Body struct {
		Status string `json:"status"`
	}
}
