package main

import (
	"context"
	"net/http"

	"rentmap-api/internal/config"
	"rentmap-api/internal/directions"
	"rentmap-api/internal/handler"
	"rentmap-api/internal/mapsession"
	"rentmap-api/internal/places"
	"rentmap-api/internal/repository"
	"rentmap-api/internal/service"

	_ "rentmap-api/docs"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Rentmap API
//	@version		1.0
//	@description	Rental listings map API: property search, nearest-POI resolution and cached routing for the comparison view.

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if config.MapsAPIKey == "" {
		log.Warn().Msg("MAPS_API_KEY is not set; comparison sessions will fall back to static views")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)

	placesClient := places.NewClient(config.PlacesBaseURL, config.MapsAPIKey)
	directionsClient := directions.NewClient(config.DirectionsBaseURL, config.MapsAPIKey)

	listingService := service.NewListingService(repo)
	nearestService := service.NewNearestPlaceService(placesClient)
	routeService, err := service.NewRouteService(directionsClient, config.RouteCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create route service")
	}
	recentSearches := service.NewRecentSearches()
	sessionManager := mapsession.NewManager(nearestService, routeService, recentSearches, config.MapsAPIKey)

	listingsHandler := handler.NewListingsHandler(listingService)
	savedHandler := handler.NewSavedHandler(repo)
	mapsHandler := handler.NewMapsHandler(config.MapsAPIKey)
	nearbyHandler := handler.NewNearbyHandler(nearestService, recentSearches)
	routesHandler := handler.NewRoutesHandler(routeService)
	comparisonHandler := handler.NewComparisonHandler(sessionManager, listingService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/properties", listingsHandler.List)
		api.GET("/properties/near", listingsHandler.Near)
		api.GET("/properties/:id", listingsHandler.Get)

		api.GET("/saved-properties", savedHandler.List)
		api.POST("/saved-properties", savedHandler.Save)
		api.DELETE("/saved-properties/:listingID", savedHandler.Unsave)

		api.GET("/maps-key", mapsHandler.Key)

		api.GET("/nearby-places", nearbyHandler.Get)
		api.POST("/nearby-places", nearbyHandler.Search)
		api.GET("/recent-searches", nearbyHandler.RecentSearches)

		api.POST("/routes", routesHandler.Route)

		api.POST("/comparison", comparisonHandler.Create)
		api.GET("/comparison/:id", comparisonHandler.Get)
		api.POST("/comparison/:id/search", comparisonHandler.Search)
		api.DELETE("/comparison/:id/listings/:listingID", comparisonHandler.RemoveListing)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
