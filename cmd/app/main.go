package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tourplan/cmd/fx/catalog_fx"
	"tourplan/cmd/fx/controllers_fx"
	"tourplan/cmd/fx/db_fx"
	"tourplan/cmd/fx/embedding_fx"
	"tourplan/cmd/fx/itinerary_fx"
	"tourplan/cmd/fx/logger_fx"
	"tourplan/cmd/fx/recommender_fx"
	"tourplan/internal/api/controllers"
	"tourplan/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		logger_fx.Module,
		catalog_fx.Module,
		embedding_fx.Module,
		recommender_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	locationsController *controllers.LocationsController,
	recommendationController *controllers.RecommendationController,
	poisController *controllers.POIsController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, itineraryController, locationsController, recommendationController, poisController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	locationsController *controllers.LocationsController,
	recommendationController *controllers.RecommendationController,
	poisController *controllers.POIsController) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	itineraryGroup := r.Group("/itinerary")
	itineraryGroup.POST("", itineraryController.BuildItinerary)
	itineraryGroup.GET("/quick", itineraryController.QuickItinerary)

	locationsGroup := r.Group("/locations")
	locationsGroup.GET("", locationsController.ListLocations)
	locationsGroup.GET("/suggestions", locationsController.SuggestLocations)

	recommendationsGroup := r.Group("/recommendations")
	recommendationsGroup.GET("/candidates", recommendationController.GetCandidates)
	recommendationsGroup.POST("/rerank", recommendationController.Rerank)
	recommendationsGroup.DELETE("/scores", recommendationController.ClearScores)

	r.GET("/themes", recommendationController.ListThemes)

	poisGroup := r.Group("/pois")
	poisGroup.POST("", poisController.CreatePoi)
	poisGroup.POST("/backfill", poisController.BackfillEmbeddings)
}
