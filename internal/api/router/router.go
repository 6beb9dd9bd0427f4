package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/transferhq/dispatch-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes.
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(MetricsMiddleware(deps.Metrics))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "dispatch-api-service",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	assignmentHandler := handler.NewAssignmentHandler(deps)

	v1 := r.Group("/api/v1")
	{
		assignments := v1.Group("/assignments")
		{
			assignments.POST("", assignmentHandler.Assign)
			assignments.PATCH("/:assignment_id", assignmentHandler.Reassign)
			assignments.DELETE("/:assignment_id", assignmentHandler.Unassign)
		}

		v1.GET("/day-view", assignmentHandler.DayView)
		v1.GET("/vehicles/available", assignmentHandler.AvailableVehicles)
		v1.GET("/drivers/available", assignmentHandler.AvailableDrivers)
		v1.GET("/reps/available", assignmentHandler.AvailableReps)
	}

	return r
}
