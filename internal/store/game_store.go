package store

import (
	"context"

	"mygamelist/backend/internal/models"

	"gorm.io/gorm"
)

// GameStore issues catalog queries against the injected pool.
type GameStore struct {
	db *gorm.DB
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db}
}

// List returns the full catalog, most-recently-seeded first.
func (s *GameStore) List(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).Order("id DESC").Find(&games).Error
	return games, err
}

// UpdateCover sets the cover image URL for a single game.
func (s *GameStore) UpdateCover(ctx context.Context, gameID uint, coverURL string) error {
	return s.db.WithContext(ctx).Model(&models.Game{}).
		Where("id = ?", gameID).
		Update("cover_image_url", coverURL).Error
}

// ListNeedingCover returns games whose cover URL is missing, driving the
// batch RAWG backfill.
func (s *GameStore) ListNeedingCover(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).
		Where("cover_image_url IS NULL OR cover_image_url = ''").
		Find(&games).Error
	return games, err
}
