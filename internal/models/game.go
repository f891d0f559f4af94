package models

// Game represents a catalog entry. Rows are seeded out of band; only the
// cover URL is ever mutated, by the cover-backfill path.
type Game struct {
	ID            uint    `gorm:"primaryKey"`
	Title         string  `gorm:"size:255;not null"`
	Genre         string  `gorm:"size:100"`
	Developer     string  `gorm:"size:255"`
	CoverImageURL *string `gorm:"size:512"`
}

func (Game) TableName() string { return "games" }
