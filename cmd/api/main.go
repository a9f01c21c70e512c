package main

import (
	"log"
	"os"

	"energy-mix-sim/internal/api/handlers"
	"energy-mix-sim/internal/api/middleware"
	"energy-mix-sim/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	cataloguePath := os.Getenv("CATALOGUE_FILE")

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	cache := data.GetCache()
	simulateHandler := handlers.NewSimulateHandler(cache)
	rankHandler := handlers.NewRankHandler(cache)
	catalogueHandler := handlers.NewCatalogueHandler(cataloguePath)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Simulate)
		api.POST("/rank", rankHandler.Rank)
		api.GET("/catalogue", catalogueHandler.Catalogue)
	}

	log.Printf("listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
