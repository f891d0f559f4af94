package main

import (
	"fmt"
	"net/http"

	"mygamelist/backend/internal/auth"
	"mygamelist/backend/internal/config"
	"mygamelist/backend/internal/database"
	"mygamelist/backend/internal/handler"
	"mygamelist/backend/internal/rawg"
	"mygamelist/backend/internal/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	// Swagger imports
	_ "mygamelist/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           MyGameList API
// @version         1.0
// @description     This is the API for the MyGameList service.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	db := database.Connect(config.AppConfig.DSN())
	defer database.Close(db)

	users := store.NewUserStore(db)
	games := store.NewGameStore(db)
	library := store.NewLibraryStore(db)
	rawgClient := rawg.NewClient(config.AppConfig.RAWGAPIKey)

	authHandler := handler.NewAuthHandler(users)
	gameHandler := handler.NewGameHandler(games, rawgClient)
	libraryHandler := handler.NewLibraryHandler(library)

	router := gin.Default()
	router.HandleMethodNotAllowed = true

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API routes
	api := router.Group("/api")
	api.Use(auth.SessionMiddleware())
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Catalog and cover routes
		gameRoutes := api.Group("/games")
		{
			gameRoutes.GET("/mylist_games", gameHandler.MyListGames)
			gameRoutes.POST("/update-covers", gameHandler.UpdateCovers)
			gameRoutes.POST("/user_games", libraryHandler.TrackGame)
		}

		api.GET("/cover", gameHandler.Cover)
		api.GET("/top_games", libraryHandler.TopGames)
		api.GET("/user_library", libraryHandler.UserLibrary)
	}

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(addr))
}
