package services

import (
	"fmt"
	"sort"

	"github.com/desertthunder/trackplay/internal/models"
)

// NormalizeHistory maps raw movie and episode history records into the
// normalized shape, concatenates them, and sorts descending by watch time.
// The sort is stable: entries with equal timestamps keep provider order.
func NormalizeHistory(movies, episodes []TraktHistoryItem) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, 0, len(movies)+len(episodes))

	for _, item := range movies {
		if item.Movie == nil {
			continue
		}
		entries = append(entries, models.HistoryEntry{
			ID:        item.ID,
			Title:     item.Movie.Title,
			Type:      models.MediaTypeMovie,
			WatchedAt: item.WatchedAt,
		})
	}

	for _, item := range episodes {
		if item.Show == nil || item.Episode == nil {
			continue
		}
		entries = append(entries, models.HistoryEntry{
			ID:        item.ID,
			Title:     episodeTitle(item.Show, item.Episode),
			Type:      models.MediaTypeShow,
			WatchedAt: item.WatchedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].WatchedAt.After(entries[j].WatchedAt)
	})

	return entries
}

// episodeTitle formats "{show} - {episode}", falling back to the season and
// episode number when the episode has no title.
func episodeTitle(show *TraktShow, episode *TraktEpisode) string {
	if episode.Title != "" {
		return fmt.Sprintf("%s - %s", show.Title, episode.Title)
	}
	return fmt.Sprintf("%s - S%dE%d", show.Title, episode.Season, episode.Number)
}

// NormalizeRecommendations maps raw recommendation records into the
// normalized shape. Provider order is preserved; no sort is applied.
func NormalizeRecommendations(movies, shows []TraktRecommendation) models.Recommendations {
	return models.Recommendations{
		Movies: normalizeRecommendationList(movies, models.MediaTypeMovie),
		Shows:  normalizeRecommendationList(shows, models.MediaTypeShow),
	}
}

func normalizeRecommendationList(items []TraktRecommendation, mediaType models.MediaType) []models.Recommendation {
	entries := make([]models.Recommendation, 0, len(items))
	for _, item := range items {
		entries = append(entries, models.Recommendation{
			ID:     item.IDs.Trakt,
			ImdbID: item.IDs.Imdb,
			Title:  item.Title,
			Year:   item.Year,
			Type:   mediaType,
			Rating: item.Rating,
		})
	}
	return entries
}
