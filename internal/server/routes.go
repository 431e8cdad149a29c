package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"community-service/internal/server/handlers"
	"community-service/internal/server/middleware"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	pollHandler *handlers.PollHandler,
	voteHandler *handlers.VoteHandler,
	adminHandler *handlers.AdminHandler,
) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// All poll and vote routes require an authenticated principal
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtSecret))
	{
		// Poll routes
		protected.POST("/polls", pollHandler.CreatePoll)
		protected.GET("/polls", pollHandler.ListPolls)
		protected.GET("/polls/:poll_id", pollHandler.GetPollDetail)
		protected.PUT("/polls/:poll_id", pollHandler.UpdatePoll)
		protected.DELETE("/polls/:poll_id", pollHandler.DeletePoll)

		// Vote routes
		protected.POST("/options/:option_id/vote", voteHandler.CastVote)
		protected.DELETE("/options/:option_id/vote", voteHandler.DeleteVote)

		// Operational routes
		protected.POST("/admin/polls/sweep", adminHandler.TriggerSweep)
	}
}
