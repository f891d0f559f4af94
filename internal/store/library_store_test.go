package store

import (
	"context"
	"testing"
	"time"

	"mygamelist/backend/internal/models"
)

func intp(n int) *int       { return &n }
func strp(s string) *string { return &s }

func TestLibraryStore_UpsertConvergesToOneRow(t *testing.T) {
	db := testDB(t)
	s := NewLibraryStore(db)
	ctx := context.Background()

	user := seedUser(t, db, "ana", "a@x.com")
	game := seedGame(t, db, "Hollow Knight")

	first := models.UserGame{
		UserID: user.UserID,
		GameID: game.ID,
		Status: models.StatusPlaying,
	}
	if err := s.Upsert(ctx, &first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := models.UserGame{
		UserID:      user.UserID,
		GameID:      game.ID,
		Status:      models.StatusCompleted,
		Rating:      intp(9),
		HoursPlayed: intp(40),
		Platform:    strp("Switch"),
	}
	if err := s.Upsert(ctx, &second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var rows []models.UserGame
	if err := db.Where("user_id = ? AND game_id = ?", user.UserID, game.ID).Find(&rows).Error; err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want exactly one row per (user, game), got %d", len(rows))
	}

	got := rows[0]
	if got.Status != models.StatusCompleted {
		t.Fatalf("want last writer's status %q, got %q", models.StatusCompleted, got.Status)
	}
	if got.Rating == nil || *got.Rating != 9 {
		t.Fatalf("want rating 9, got %v", got.Rating)
	}
	if got.HoursPlayed == nil || *got.HoursPlayed != 40 {
		t.Fatalf("want 40 hours, got %v", got.HoursPlayed)
	}
	if got.Platform == nil || *got.Platform != "Switch" {
		t.Fatalf("want platform Switch, got %v", got.Platform)
	}
}

func TestLibraryStore_UpsertOverwritesWithNulls(t *testing.T) {
	db := testDB(t)
	s := NewLibraryStore(db)
	ctx := context.Background()

	user := seedUser(t, db, "ana", "a@x.com")
	game := seedGame(t, db, "Celeste")

	first := models.UserGame{
		UserID: user.UserID,
		GameID: game.ID,
		Status: models.StatusCompleted,
		Rating: intp(10),
	}
	if err := s.Upsert(ctx, &first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Absent optionals overwrite, they do not merge.
	second := models.UserGame{
		UserID: user.UserID,
		GameID: game.ID,
		Status: models.StatusDropped,
	}
	if err := s.Upsert(ctx, &second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var got models.UserGame
	if err := db.Where("user_id = ? AND game_id = ?", user.UserID, game.ID).First(&got).Error; err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.Rating != nil {
		t.Fatalf("want rating cleared, got %v", *got.Rating)
	}
	if got.Status != models.StatusDropped {
		t.Fatalf("want status %q, got %q", models.StatusDropped, got.Status)
	}
}

func TestLibraryStore_UserLibrary(t *testing.T) {
	db := testDB(t)
	s := NewLibraryStore(db)
	ctx := context.Background()

	user := seedUser(t, db, "ana", "a@x.com")
	other := seedUser(t, db, "bob", "b@x.com")
	older := seedGame(t, db, "Older Game")
	newer := seedGame(t, db, "Newer Game")

	for _, ug := range []models.UserGame{
		{UserID: user.UserID, GameID: older.ID, Status: models.StatusCompleted, Rating: intp(8)},
		{UserID: user.UserID, GameID: newer.ID, Status: models.StatusPlaying},
		{UserID: other.UserID, GameID: older.ID, Status: models.StatusDropped},
	} {
		if err := s.Upsert(ctx, &ug); err != nil {
			t.Fatalf("seed upsert: %v", err)
		}
	}

	// Force a deterministic recency order: age the first tracking row.
	if err := db.Exec(
		"UPDATE user_games SET updated_at = ? WHERE user_id = ? AND game_id = ?",
		time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), user.UserID, older.ID,
	).Error; err != nil {
		t.Fatalf("age older row: %v", err)
	}

	library, err := s.UserLibrary(ctx, user.UserID)
	if err != nil {
		t.Fatalf("user library: %v", err)
	}
	if len(library) != 2 {
		t.Fatalf("want 2 rows for the user, got %d", len(library))
	}
	if library[0].GameID != newer.ID {
		t.Fatalf("want most recently updated first, got game %d", library[0].GameID)
	}
	if library[0].GameTitle != "Newer Game" || library[1].GameTitle != "Older Game" {
		t.Fatalf("join did not carry catalog titles: %q, %q", library[0].GameTitle, library[1].GameTitle)
	}
	if library[1].Rating == nil || *library[1].Rating != 8 {
		t.Fatalf("want rating 8 on the older row, got %v", library[1].Rating)
	}
}

func TestLibraryStore_EmptyResultsAreArrays(t *testing.T) {
	db := testDB(t)
	s := NewLibraryStore(db)
	ctx := context.Background()

	user := seedUser(t, db, "ana", "a@x.com")

	library, err := s.UserLibrary(ctx, user.UserID)
	if err != nil {
		t.Fatalf("user library: %v", err)
	}
	if library == nil {
		t.Fatal("empty library must be a non-nil slice, it serializes as a JSON array")
	}
	if len(library) != 0 {
		t.Fatalf("want no rows, got %d", len(library))
	}

	top, err := s.TopGames(ctx, 5)
	if err != nil {
		t.Fatalf("top games: %v", err)
	}
	if top == nil {
		t.Fatal("empty ranking must be a non-nil slice")
	}
}

func TestLibraryStore_TopGamesOrdering(t *testing.T) {
	db := testDB(t)
	s := NewLibraryStore(db)
	ctx := context.Background()

	popular := seedGame(t, db, "Popular") // avg 4.0 from 10 votes
	niche := seedGame(t, db, "Niche")     // avg 4.0 from 5 votes
	average := seedGame(t, db, "Average") // avg 3.0 from 1 vote
	unrated := seedGame(t, db, "Unrated") // no votes, null average

	var users []models.User
	for i := 0; i < 10; i++ {
		users = append(users, seedUser(t, db, "user"+string(rune('a'+i)), string(rune('a'+i))+"@x.com"))
	}

	for i, u := range users {
		if err := db.Create(&models.UserGame{
			UserID: u.UserID, GameID: popular.ID,
			Status: models.StatusCompleted, Rating: intp(4),
		}).Error; err != nil {
			t.Fatalf("seed vote: %v", err)
		}
		if i < 5 {
			if err := db.Create(&models.UserGame{
				UserID: u.UserID, GameID: niche.ID,
				Status: models.StatusCompleted, Rating: intp(4),
			}).Error; err != nil {
				t.Fatalf("seed vote: %v", err)
			}
		}
	}
	if err := db.Create(&models.UserGame{
		UserID: users[0].UserID, GameID: average.ID,
		Status: models.StatusCompleted, Rating: intp(3),
	}).Error; err != nil {
		t.Fatalf("seed vote: %v", err)
	}

	top, err := s.TopGames(ctx, 10)
	if err != nil {
		t.Fatalf("top games: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("want all 4 games in the ranking, got %d", len(top))
	}

	wantOrder := []uint{popular.ID, niche.ID, average.ID, unrated.ID}
	for i, want := range wantOrder {
		if top[i].GameID != want {
			t.Fatalf("position %d: want game %d, got %d", i, want, top[i].GameID)
		}
	}

	if top[0].TotalVotes != 10 || top[1].TotalVotes != 5 || top[2].TotalVotes != 1 {
		t.Fatalf("vote counts wrong: %d, %d, %d", top[0].TotalVotes, top[1].TotalVotes, top[2].TotalVotes)
	}
	if top[0].AvgRating == nil || *top[0].AvgRating != 4.0 {
		t.Fatalf("want avg 4.0, got %v", top[0].AvgRating)
	}
	if top[3].AvgRating != nil {
		t.Fatalf("unrated game must keep a null average, got %v", *top[3].AvgRating)
	}
	if top[3].TotalVotes != 0 {
		t.Fatalf("unrated game must report zero votes, got %d", top[3].TotalVotes)
	}
}

func TestLibraryStore_TopGamesRoundingAndLimit(t *testing.T) {
	db := testDB(t)
	s := NewLibraryStore(db)
	ctx := context.Background()

	game := seedGame(t, db, "Rounded")
	seedGame(t, db, "Filler")

	u1 := seedUser(t, db, "ana", "a@x.com")
	u2 := seedUser(t, db, "bob", "b@x.com")
	u3 := seedUser(t, db, "cax", "c@x.com")
	for i, pair := range []struct {
		user   models.User
		rating int
	}{{u1, 3}, {u2, 3}, {u3, 4}} {
		if err := db.Create(&models.UserGame{
			UserID: pair.user.UserID, GameID: game.ID,
			Status: models.StatusCompleted, Rating: intp(pair.rating),
		}).Error; err != nil {
			t.Fatalf("seed vote %d: %v", i, err)
		}
	}

	top, err := s.TopGames(ctx, 1)
	if err != nil {
		t.Fatalf("top games: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("limit not applied: got %d rows", len(top))
	}
	// 10/3 rounded to two decimals
	if top[0].AvgRating == nil || *top[0].AvgRating != 3.33 {
		t.Fatalf("want avg 3.33, got %v", top[0].AvgRating)
	}
}
