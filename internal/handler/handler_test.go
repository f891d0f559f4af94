package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"mygamelist/backend/internal/auth"
	"mygamelist/backend/internal/config"
	"mygamelist/backend/internal/models"
	"mygamelist/backend/internal/rawg"
	"mygamelist/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}

// testRouter wires the handlers onto a fresh in-memory database, mirroring
// the route table in cmd/server.
func testRouter(t *testing.T, rawgClient *rawg.Client) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Game{}, &models.UserGame{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	if rawgClient == nil {
		rawgClient = rawg.NewClient("")
	}

	authHandler := NewAuthHandler(store.NewUserStore(db))
	gameHandler := NewGameHandler(store.NewGameStore(db), rawgClient)
	libraryHandler := NewLibraryHandler(store.NewLibraryStore(db))

	router := gin.New()
	router.HandleMethodNotAllowed = true

	api := router.Group("/api")
	api.Use(auth.SessionMiddleware())
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
		}
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

	return router, db
}

// doJSON performs a request with a JSON body and optional headers.
func doJSON(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedGame(t *testing.T, db *gorm.DB, title string, cover *string) models.Game {
	t.Helper()
	game := models.Game{Title: title, Genre: "RPG", Developer: "studio", CoverImageURL: cover}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("seed game %q: %v", title, err)
	}
	return game
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	return user
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}
