package api

import (
	"github.com/gin-gonic/gin"

	"github.com/deskhive/deskhive-backend/usecases"
)

// InitRoutes mounts the automation engine routes. The liveness probe is the
// only unauthenticated route.
func InitRoutes(r *gin.Engine, auth Authentication, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe())

	authenticated := r.Group("/", auth.Middleware())
	authenticated.POST("/automation-rules/:rule_id/runs", handleInvokeRuleRun(uc))
	authenticated.GET("/automation-runs/:run_id", handleGetRuleRun(uc))
}
