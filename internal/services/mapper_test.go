package services

import (
	"testing"
	"time"

	"github.com/desertthunder/trackplay/internal/models"
)

func historyTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("failed to parse time %s: %v", value, err)
	}
	return parsed
}

func TestNormalizeHistory(t *testing.T) {
	t.Run("Sorts Newest First", func(t *testing.T) {
		movies := []TraktHistoryItem{
			{ID: 1, WatchedAt: historyTime(t, "2024-01-01T10:00:00Z"), Movie: &TraktMovie{Title: "Old Movie"}},
			{ID: 2, WatchedAt: historyTime(t, "2024-03-01T10:00:00Z"), Movie: &TraktMovie{Title: "New Movie"}},
		}
		episodes := []TraktHistoryItem{
			{
				ID:        3,
				WatchedAt: historyTime(t, "2024-02-01T10:00:00Z"),
				Show:      &TraktShow{Title: "Severance"},
				Episode:   &TraktEpisode{Season: 1, Number: 2, Title: "Half Loop"},
			},
		}

		entries := NormalizeHistory(movies, episodes)
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}

		if entries[0].Title != "New Movie" {
			t.Errorf("expected newest entry first, got %s", entries[0].Title)
		}
		if entries[1].Title != "Severance - Half Loop" {
			t.Errorf("expected episode second, got %s", entries[1].Title)
		}
		if entries[2].Title != "Old Movie" {
			t.Errorf("expected oldest entry last, got %s", entries[2].Title)
		}

		for i := 1; i < len(entries); i++ {
			if entries[i].WatchedAt.After(entries[i-1].WatchedAt) {
				t.Error("entries should be sorted descending by watch time")
			}
		}
	})

	t.Run("Equal Timestamps Keep Provider Order", func(t *testing.T) {
		at := historyTime(t, "2024-01-01T10:00:00Z")
		movies := []TraktHistoryItem{
			{ID: 1, WatchedAt: at, Movie: &TraktMovie{Title: "First"}},
			{ID: 2, WatchedAt: at, Movie: &TraktMovie{Title: "Second"}},
			{ID: 3, WatchedAt: at, Movie: &TraktMovie{Title: "Third"}},
		}

		entries := NormalizeHistory(movies, nil)
		if entries[0].Title != "First" || entries[1].Title != "Second" || entries[2].Title != "Third" {
			t.Error("expected stable sort to preserve provider order for equal timestamps")
		}
	})

	t.Run("Episode Title Fallback", func(t *testing.T) {
		episodes := []TraktHistoryItem{
			{
				ID:        1,
				WatchedAt: historyTime(t, "2024-01-01T10:00:00Z"),
				Show:      &TraktShow{Title: "Severance"},
				Episode:   &TraktEpisode{Season: 2, Number: 4},
			},
		}

		entries := NormalizeHistory(nil, episodes)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Title != "Severance - S2E4" {
			t.Errorf("expected fallback title 'Severance - S2E4', got %s", entries[0].Title)
		}
	})

	t.Run("Skips Malformed Items", func(t *testing.T) {
		movies := []TraktHistoryItem{
			{ID: 1, WatchedAt: historyTime(t, "2024-01-01T10:00:00Z")},
		}
		episodes := []TraktHistoryItem{
			{ID: 2, WatchedAt: historyTime(t, "2024-01-02T10:00:00Z"), Show: &TraktShow{Title: "No Episode"}},
			{ID: 3, WatchedAt: historyTime(t, "2024-01-03T10:00:00Z"), Episode: &TraktEpisode{Season: 1, Number: 1}},
		}

		if entries := NormalizeHistory(movies, episodes); len(entries) != 0 {
			t.Errorf("expected malformed items to be skipped, got %d entries", len(entries))
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		entries := NormalizeHistory(nil, nil)
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %d", len(entries))
		}
	})

	t.Run("Sets Media Types", func(t *testing.T) {
		movies := []TraktHistoryItem{
			{ID: 1, WatchedAt: historyTime(t, "2024-01-02T10:00:00Z"), Movie: &TraktMovie{Title: "Heat"}},
		}
		episodes := []TraktHistoryItem{
			{
				ID:        2,
				WatchedAt: historyTime(t, "2024-01-01T10:00:00Z"),
				Show:      &TraktShow{Title: "Severance"},
				Episode:   &TraktEpisode{Season: 1, Number: 1, Title: "Good News About Hell"},
			},
		}

		entries := NormalizeHistory(movies, episodes)
		if entries[0].Type != models.MediaTypeMovie {
			t.Errorf("expected movie type, got %s", entries[0].Type)
		}
		if entries[1].Type != models.MediaTypeShow {
			t.Errorf("expected show type, got %s", entries[1].Type)
		}
	})
}

func TestNormalizeRecommendations(t *testing.T) {
	t.Run("Maps Movies And Shows", func(t *testing.T) {
		movies := []TraktRecommendation{
			{Title: "Heat", Year: 1995, Rating: 8.3, IDs: TraktIDs{Trakt: 1, Imdb: "tt0113277"}},
		}
		shows := []TraktRecommendation{
			{Title: "Severance", Year: 2022, Rating: 8.7, IDs: TraktIDs{Trakt: 2, Imdb: "tt11280740"}},
		}

		recs := NormalizeRecommendations(movies, shows)

		if len(recs.Movies) != 1 || len(recs.Shows) != 1 {
			t.Fatalf("expected 1 movie and 1 show, got %d and %d", len(recs.Movies), len(recs.Shows))
		}

		movie := recs.Movies[0]
		if movie.Title != "Heat" || movie.Year != 1995 || movie.ImdbID != "tt0113277" {
			t.Error("expected movie fields to be mapped")
		}
		if movie.Type != models.MediaTypeMovie {
			t.Errorf("expected movie type, got %s", movie.Type)
		}

		show := recs.Shows[0]
		if show.Type != models.MediaTypeShow {
			t.Errorf("expected show type, got %s", show.Type)
		}
		if show.Rating != 8.7 {
			t.Errorf("expected rating to be mapped, got %f", show.Rating)
		}
	})

	t.Run("Preserves Provider Order", func(t *testing.T) {
		movies := []TraktRecommendation{
			{Title: "Third Pick", IDs: TraktIDs{Trakt: 3}},
			{Title: "First Pick", IDs: TraktIDs{Trakt: 1}},
			{Title: "Second Pick", IDs: TraktIDs{Trakt: 2}},
		}

		recs := NormalizeRecommendations(movies, nil)
		if recs.Movies[0].Title != "Third Pick" || recs.Movies[2].Title != "Second Pick" {
			t.Error("expected provider order to be preserved")
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		recs := NormalizeRecommendations(nil, nil)
		if len(recs.Movies) != 0 || len(recs.Shows) != 0 {
			t.Error("expected empty recommendation lists")
		}
		if len(recs.All()) != 0 {
			t.Error("expected All to be empty")
		}
	})
}
