package routes

import (
	"github.com/gin-gonic/gin"

	"go-crisiswatch/crisis"
	"go-crisiswatch/handlers"
)

func SetupRouter(pipeline *crisis.Pipeline, issues handlers.IssueGetter) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to CrisisWatch!",
		})
	})

	// api routes
	api := r.Group("/api/crisiswatch")
	{
		api.POST("/report", func(c *gin.Context) {
			handlers.ProcessCrisisReport(c, pipeline)
		})
		api.GET("/issues/:id", func(c *gin.Context) {
			handlers.GetIssue(c, issues)
		})
	}

	return r
}
