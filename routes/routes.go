package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"Farsante/controllers"
	"Farsante/services/game"
	utils "Farsante/utils"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, sqlDB *sql.DB, gs *game.Service) {
	// Create controllers
	statsController := &controllers.StatsController{DB: sqlDB}
	roomController := &controllers.RoomController{Game: gs}

	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/stats/:playerId", statsController.GetPlayerStats)
	api.GET("/stats/:playerId/games", statsController.GetRecentGames)

	rooms := api.Group("/rooms")
	{
		rooms.GET("/:roomId", roomController.GetRoomInfo)
	}

	// The frontend triggers the voting phase over REST rather than a
	// socket event.
	api.POST("/voting/:roomId", roomController.ForceVoting)
}
