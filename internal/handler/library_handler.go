package handler

import (
	"net/http"
	"strconv"
	"time"

	"mygamelist/backend/internal/auth"
	"mygamelist/backend/internal/models"
	"mygamelist/backend/internal/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// topGamesLimit caps the homepage ranking.
const topGamesLimit = 5

// TrackGameInput defines the structure for saving a tracking record. Rating
// and hours arrive as numbers from the tracking form and are truncated to
// integers.
type TrackGameInput struct {
	UserID         uint     `json:"user_id"`
	GameID         uint     `json:"game_id"`
	Status         string   `json:"status"`
	Rating         *float64 `json:"rating"`
	HoursPlayed    *float64 `json:"hours_played"`
	Platform       *string  `json:"platform"`
	StartDate      *string  `json:"start_date"`
	CompletionDate *string  `json:"completion_date"`
}

// LibraryHandler serves the tracking, library and ranking endpoints.
type LibraryHandler struct {
	library *store.LibraryStore
}

func NewLibraryHandler(library *store.LibraryStore) *LibraryHandler {
	return &LibraryHandler{library: library}
}

// TrackGame godoc
// @Summary      Save a tracking record
// @Description  Inserts or atomically overwrites the caller's tracking record for a game.
// @Tags         library
// @Accept       json
// @Produce      json
// @Param        input body TrackGameInput true "Tracking record"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  MessageResponse
// @Failure      401  {object}  MessageResponse
// @Failure      500  {object}  MessageResponse
// @Router       /games/user_games [post]
func (h *LibraryHandler) TrackGame(c *gin.Context) {
	var input TrackGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Malformed request body."})
		return
	}

	// A verified token wins; otherwise the client-supplied id is trusted
	// as-is, matching the original behavior.
	userID := input.UserID
	if id, ok := auth.SessionFrom(c).UserID(); ok {
		userID = id
	}
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated."})
		return
	}

	if input.GameID == 0 || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incomplete data (game_id and status are required)."})
		return
	}
	status := models.GameStatus(input.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown status."})
		return
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid start_date (expected YYYY-MM-DD)."})
		return
	}
	completionDate, err := parseDate(input.CompletionDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid completion_date (expected YYYY-MM-DD)."})
		return
	}

	entry := models.UserGame{
		UserID:         userID,
		GameID:         input.GameID,
		Status:         status,
		Rating:         truncate(input.Rating),
		HoursPlayed:    truncate(input.HoursPlayed),
		Platform:       emptyToNil(input.Platform),
		StartDate:      startDate,
		CompletionDate: completionDate,
	}

	if err := h.library.Upsert(c.Request.Context(), &entry); err != nil {
		log.Errorf("user_games: upsert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database failure while saving the game record."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game saved to your list."})
}

// UserLibrary godoc
// @Summary      Read the caller's library
// @Description  Returns all tracking rows joined with catalog title and cover, most recently updated first.
// @Tags         library
// @Produce      json
// @Param        x-user-id header string false "Caller identity"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /user_library [get]
func (h *LibraryHandler) UserLibrary(c *gin.Context) {
	userID, ok := auth.SessionFrom(c).UserID()
	if !ok {
		if id, err := strconv.ParseUint(c.GetHeader("x-user-id"), 10, 32); err == nil {
			userID = uint(id)
		}
	}
	if userID == 0 {
		// No identity yields an empty library, not an error.
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []store.LibraryEntry{}})
		return
	}

	library, err := h.library.UserLibrary(c.Request.Context(), userID)
	if err != nil {
		log.Errorf("user_library: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load library data.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": library})
}

// TopGames godoc
// @Summary      Top games by average rating
// @Description  Returns the five best-rated games, ties broken by vote count, unrated games last.
// @Tags         library
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /top_games [get]
func (h *LibraryHandler) TopGames(c *gin.Context) {
	topGames, err := h.library.TopGames(c.Request.Context(), topGamesLimit)
	if err != nil {
		log.Errorf("top_games: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error while loading featured games.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Featured games loaded successfully.",
		"data":    topGames,
	})
}

func truncate(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func parseDate(s *string) (*datatypes.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}
