package store

import (
	"context"

	"mygamelist/backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LibraryStore issues tracking-record queries against the injected pool.
type LibraryStore struct {
	db *gorm.DB
}

func NewLibraryStore(db *gorm.DB) *LibraryStore {
	return &LibraryStore{db: db}
}

// LibraryEntry is one row of a user's library joined against the catalog.
type LibraryEntry struct {
	Status         models.GameStatus `json:"status"`
	Rating         *int              `json:"rating"`
	HoursPlayed    *int              `json:"hours_played"`
	Platform       *string           `json:"platform"`
	StartDate      *datatypes.Date   `json:"start_date"`
	CompletionDate *datatypes.Date   `json:"completion_date"`
	GameID         uint              `json:"game_id"`
	GameTitle      string            `json:"game_title"`
	GameCover      *string           `json:"game_cover"`
}

// TopGame is one row of the average-rating ranking. AvgRating is nil for
// games with no tracking records.
type TopGame struct {
	GameID     uint     `json:"game_id"`
	GameTitle  string   `json:"game_title"`
	GameCover  *string  `json:"game_cover"`
	Genre      string   `json:"genre"`
	AvgRating  *float64 `json:"avg_rating"`
	TotalVotes int64    `json:"total_votes"`
}

// Upsert inserts the tracking record or, on conflict over (user_id, game_id),
// overwrites every mutable field and refreshes updated_at. Atomicity is the
// database's single-statement guarantee; concurrent writers for the same pair
// converge to one row reflecting the last writer.
func (s *LibraryStore) Upsert(ctx context.Context, entry *models.UserGame) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "rating", "hours_played", "platform",
			"start_date", "completion_date", "updated_at",
		}),
	}).Create(entry).Error
}

// UserLibrary returns every tracking row for the user joined with the catalog
// title and cover, most recently updated first.
func (s *LibraryStore) UserLibrary(ctx context.Context, userID uint) ([]LibraryEntry, error) {
	// Non-nil so an empty library serializes as a JSON array, not null.
	rows := []LibraryEntry{}
	err := s.db.WithContext(ctx).
		Table("user_games ug").
		Select(`ug.status, ug.rating, ug.hours_played, ug.platform,
			ug.start_date, ug.completion_date,
			g.id AS game_id, g.title AS game_title,
			g.cover_image_url AS game_cover`).
		Joins("JOIN games g ON ug.game_id = g.id").
		Where("ug.user_id = ?", userID).
		Order("ug.updated_at DESC").
		Scan(&rows).Error
	return rows, err
}

// TopGames ranks games by average user rating (two decimals) with vote-count
// tie-break. Games with no votes keep a null average and sort last.
func (s *LibraryStore) TopGames(ctx context.Context, limit int) ([]TopGame, error) {
	rows := []TopGame{}
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			g.id AS game_id,
			g.title AS game_title,
			g.cover_image_url AS game_cover,
			g.genre,
			ROUND(CAST(AVG(ug.rating) AS NUMERIC), 2) AS avg_rating,
			COUNT(ug.id) AS total_votes
		FROM games g
		LEFT JOIN user_games ug ON ug.game_id = g.id
		GROUP BY g.id, g.title, g.cover_image_url, g.genre
		ORDER BY avg_rating DESC NULLS LAST, total_votes DESC
		LIMIT ?`, limit).
		Scan(&rows).Error
	return rows, err
}
