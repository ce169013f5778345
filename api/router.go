package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the transfer core's entire HTTP surface: submit a
// transfer, poll one, list all. There is no directory browsing, no
// bulk/recursive endpoint, and no auth UI — those are explicitly out of
// scope for the transfer core this server fronts.
func SetupRouter(tm *TaskManager) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(config))

	router.GET("/health", HealthCheck(tm))

	api := router.Group("/api")
	{
		api.POST("/transfers", StartTransfer(tm))
		api.GET("/transfers", ListTransfers(tm))
		api.GET("/transfers/:id", GetTransfer(tm))
	}

	return router
}
