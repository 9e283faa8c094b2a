// package formatter provides functions to export history and recommendation data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/trackplay/internal/models"
)

// HistoryToCSV converts history entries to CSV with columns: ID, Title, Type, WatchedAt
func HistoryToCSV(entries []models.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Type", "WatchedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.FormatInt(entry.ID, 10),
			entry.Title,
			string(entry.Type),
			entry.WatchedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HistoryToMarkdown converts history entries to a Markdown listing
func HistoryToMarkdown(entries []models.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Watch History\n\n")
	buf.WriteString(fmt.Sprintf("**Entries**: %d\n\n", len(entries)))

	for i, entry := range entries {
		buf.WriteString(fmt.Sprintf("%d. %s (%s) — watched %s\n",
			i+1, entry.Title, entry.Type, entry.WatchedAt.Format("2006-01-02")))
	}

	return buf.Bytes(), nil
}

// HistoryToText converts history entries to plain text
func HistoryToText(entries []models.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Watch history: %d entries\n\n", len(entries)))
	for i, entry := range entries {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s (%s)\n",
			i+1, entry.Type, entry.Title, entry.WatchedAt.Format("2006-01-02 15:04")))
	}

	return buf.Bytes(), nil
}

// RecommendationsToCSV converts recommendations to CSV with columns: ID, IMDB, Title, Year, Type, Rating, PosterURL
func RecommendationsToCSV(recs models.Recommendations) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "IMDB", "Title", "Year", "Type", "Rating", "PosterURL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range recs.All() {
		record := []string{
			strconv.FormatInt(entry.ID, 10),
			entry.ImdbID,
			entry.Title,
			strconv.Itoa(entry.Year),
			string(entry.Type),
			strconv.FormatFloat(entry.Rating, 'f', 2, 64),
			entry.PosterURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RecommendationsToMarkdown converts recommendations to a Markdown listing with poster links
func RecommendationsToMarkdown(recs models.Recommendations) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Recommendations\n\n")

	sections := []struct {
		title   string
		entries []models.Recommendation
	}{
		{"Movies", recs.Movies},
		{"Shows", recs.Shows},
	}

	for _, section := range sections {
		if len(section.entries) == 0 {
			continue
		}
		buf.WriteString(fmt.Sprintf("## %s\n\n", section.title))
		for i, entry := range section.entries {
			buf.WriteString(fmt.Sprintf("%d. %s (%d)", i+1, entry.Title, entry.Year))
			if entry.Rating > 0 {
				buf.WriteString(fmt.Sprintf(" — %.1f", entry.Rating))
			}
			if entry.PosterURL != "" {
				buf.WriteString(fmt.Sprintf(" — [poster](%s)", entry.PosterURL))
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// RecommendationsToText converts recommendations to plain text
func RecommendationsToText(recs models.Recommendations) ([]byte, error) {
	var buf bytes.Buffer

	all := recs.All()
	buf.WriteString(fmt.Sprintf("Recommendations: %d entries\n\n", len(all)))
	for i, entry := range all {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s (%d)\n", i+1, entry.Type, entry.Title, entry.Year))
	}

	return buf.Bytes(), nil
}
