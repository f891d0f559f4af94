package handler

import (
	"net/http"
	"strconv"
	"sync"

	"mygamelist/backend/internal/models"
	"mygamelist/backend/internal/rawg"
	"mygamelist/backend/internal/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// region --- DTOs ---

// GameWithCover is a catalog row plus the cover resolved from RAWG.
type GameWithCover struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Genre         string  `json:"genre"`
	Developer     string  `json:"developer"`
	CoverImageURL *string `json:"cover_image_url"`
	Cover         *string `json:"cover"`
}

// CoverError reports a single failed cover lookup during a backfill run.
type CoverError struct {
	Game    string `json:"game"`
	Message string `json:"message"`
}

// UpdateCoversResponse summarizes a cover-backfill run.
type UpdateCoversResponse struct {
	Message string       `json:"message"`
	Updated int          `json:"updated"`
	Errors  []CoverError `json:"errors"`
}

// endregion

// GameHandler serves the catalog and cover endpoints.
type GameHandler struct {
	games *store.GameStore
	rawg  *rawg.Client
}

func NewGameHandler(games *store.GameStore, rawgClient *rawg.Client) *GameHandler {
	return &GameHandler{games: games, rawg: rawgClient}
}

// MyListGames godoc
// @Summary      List the game catalog
// @Description  Returns every catalog entry, newest first, with covers resolved per item from RAWG.
// @Tags         games
// @Produce      json
// @Success      200  {array}   GameWithCover
// @Failure      500  {object}  MessageResponse
// @Router       /games/mylist_games [get]
func (h *GameHandler) MyListGames(c *gin.Context) {
	games, err := h.games.List(c.Request.Context())
	if err != nil {
		log.Errorf("mylist_games: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load games."})
		return
	}

	results := make([]GameWithCover, len(games))
	var wg sync.WaitGroup
	for i, g := range games {
		results[i] = GameWithCover{
			ID:            g.ID,
			Title:         g.Title,
			Genre:         g.Genre,
			Developer:     g.Developer,
			CoverImageURL: g.CoverImageURL,
		}

		wg.Add(1)
		go func(i int, g models.Game) {
			defer wg.Done()
			cover, err := h.rawg.DetailCover(c.Request.Context(), strconv.FormatUint(uint64(g.ID), 10))
			if err != nil {
				log.Warnf("cover lookup failed for %q: %v", g.Title, err)
				return
			}
			if cover != "" {
				results[i].Cover = &cover
			}
		}(i, g)
	}
	wg.Wait()

	c.JSON(http.StatusOK, results)
}

// UpdateCovers godoc
// @Summary      Backfill missing covers
// @Description  Searches RAWG for games without a cover and stores the best match, up to the limit.
// @Tags         games
// @Produce      json
// @Param        limit query int false "Maximum games to process" default(10)
// @Success      200  {object}  UpdateCoversResponse
// @Failure      500  {object}  map[string]string
// @Router       /games/update-covers [post]
func (h *GameHandler) UpdateCovers(c *gin.Context) {
	// A limit of zero processes nothing; unparseable or negative values
	// collapse to zero the way slicing with NaN does.
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		limit = 0
	}

	if !h.rawg.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "RAWG_API_KEY is not configured in .env"})
		return
	}

	games, err := h.games.ListNeedingCover(c.Request.Context())
	if err != nil {
		log.Errorf("update-covers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load games needing a cover."})
		return
	}
	if len(games) > limit {
		games = games[:limit]
	}

	updated := 0
	coverErrors := []CoverError{}

	for _, game := range games {
		log.Infof("Searching cover for: %s", game.Title)

		cover, err := h.rawg.SearchCover(c.Request.Context(), game.Title)
		if err != nil {
			coverErrors = append(coverErrors, CoverError{Game: game.Title, Message: err.Error()})
			continue
		}
		if cover == "" {
			log.Infof("No cover found for %s", game.Title)
			continue
		}

		if err := h.games.UpdateCover(c.Request.Context(), game.ID, cover); err != nil {
			coverErrors = append(coverErrors, CoverError{Game: game.Title, Message: err.Error()})
			continue
		}
		log.Infof("Cover saved: %s", cover)
		updated++
	}

	c.JSON(http.StatusOK, UpdateCoversResponse{
		Message: "Process finished.",
		Updated: updated,
		Errors:  coverErrors,
	})
}

// Cover godoc
// @Summary      Fetch a RAWG game detail
// @Description  Passes the RAWG detail payload for a game id through unchanged.
// @Tags         games
// @Produce      json
// @Param        id query string true "RAWG game id"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /cover [get]
func (h *GameHandler) Cover(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id."})
		return
	}

	payload, err := h.rawg.Detail(c.Request.Context(), id)
	if err != nil {
		log.Errorf("cover: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}
