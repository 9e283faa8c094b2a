package formatter

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/trackplay/internal/models"
)

func sampleHistory() []models.HistoryEntry {
	return []models.HistoryEntry{
		{
			ID:        2,
			Title:     "Severance - Good News About Hell",
			Type:      models.MediaTypeShow,
			WatchedAt: time.Date(2024, 2, 1, 21, 0, 0, 0, time.UTC),
		},
		{
			ID:        1,
			Title:     "Heat",
			Type:      models.MediaTypeMovie,
			WatchedAt: time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
		},
	}
}

func sampleRecommendations() models.Recommendations {
	return models.Recommendations{
		Movies: []models.Recommendation{
			{ID: 1, ImdbID: "tt0113277", Title: "Heat", Year: 1995, Type: models.MediaTypeMovie, Rating: 8.3, PosterURL: "https://img.example/heat.jpg"},
		},
		Shows: []models.Recommendation{
			{ID: 2, ImdbID: "tt11280740", Title: "Severance", Year: 2022, Type: models.MediaTypeShow, Rating: 8.7},
		},
	}
}

func TestHistoryFormats(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		data, err := HistoryToCSV(sampleHistory())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("expected parseable CSV, got %v", err)
		}

		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(records))
		}
		if records[0][0] != "ID" || records[0][3] != "WatchedAt" {
			t.Errorf("unexpected header row %v", records[0])
		}
		if records[1][1] != "Severance - Good News About Hell" {
			t.Errorf("expected first entry row, got %v", records[1])
		}
		if records[2][2] != "movie" {
			t.Errorf("expected movie type column, got %v", records[2])
		}
	})

	t.Run("CSV Empty", func(t *testing.T) {
		data, err := HistoryToCSV(nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(string(data), "ID,Title,Type,WatchedAt") {
			t.Error("expected header-only CSV for empty history")
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		data, err := HistoryToMarkdown(sampleHistory())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		text := string(data)
		if !strings.Contains(text, "# Watch History") {
			t.Error("expected markdown heading")
		}
		if !strings.Contains(text, "**Entries**: 2") {
			t.Error("expected entry count")
		}
		if !strings.Contains(text, "1. Severance - Good News About Hell") {
			t.Error("expected first entry in order")
		}
	})

	t.Run("Text", func(t *testing.T) {
		data, err := HistoryToText(sampleHistory())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		text := string(data)
		if !strings.Contains(text, "Watch history: 2 entries") {
			t.Error("expected entry count")
		}
		if !strings.Contains(text, "[movie] Heat") {
			t.Error("expected typed entry line")
		}
	})
}

func TestRecommendationFormats(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		data, err := RecommendationsToCSV(sampleRecommendations())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("expected parseable CSV, got %v", err)
		}

		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(records))
		}
		if records[1][6] != "https://img.example/heat.jpg" {
			t.Errorf("expected poster column, got %v", records[1])
		}
		if records[2][6] != "" {
			t.Errorf("expected empty poster for show, got %v", records[2])
		}
	})

	t.Run("Markdown", func(t *testing.T) {
		data, err := RecommendationsToMarkdown(sampleRecommendations())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		text := string(data)
		if !strings.Contains(text, "## Movies") || !strings.Contains(text, "## Shows") {
			t.Error("expected movie and show sections")
		}
		if !strings.Contains(text, "[poster](https://img.example/heat.jpg)") {
			t.Error("expected poster link for enriched entry")
		}
	})

	t.Run("Markdown Skips Empty Sections", func(t *testing.T) {
		recs := models.Recommendations{
			Movies: sampleRecommendations().Movies,
		}
		data, err := RecommendationsToMarkdown(recs)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(string(data), "## Shows") {
			t.Error("expected empty show section to be omitted")
		}
	})

	t.Run("Text", func(t *testing.T) {
		data, err := RecommendationsToText(sampleRecommendations())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		text := string(data)
		if !strings.Contains(text, "Recommendations: 2 entries") {
			t.Error("expected entry count")
		}
		if !strings.Contains(text, "[show] Severance (2022)") {
			t.Error("expected typed entry line")
		}
	})
}
