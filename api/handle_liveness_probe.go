package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func handleLivenessProbe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Status(http.StatusOK)
	}
}
