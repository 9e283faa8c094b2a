package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/trackplay/internal/models"
)

var (
	_ list.Item = historyItem{}
	_ list.Item = recommendationItem{}
)

// historyItem wraps [models.HistoryEntry] to implement [list.Item].
type historyItem struct {
	entry models.HistoryEntry
}

func (i historyItem) FilterValue() string { return i.entry.Title }
func (i historyItem) Title() string       { return i.entry.Title }
func (i historyItem) Description() string {
	return fmt.Sprintf("%s • watched %s", i.entry.Type, i.entry.WatchedAt.Format("2006-01-02 15:04"))
}

// recommendationItem wraps [models.Recommendation] to implement [list.Item].
type recommendationItem struct {
	entry models.Recommendation
}

func (i recommendationItem) FilterValue() string { return i.entry.Title }
func (i recommendationItem) Title() string {
	return fmt.Sprintf("%s (%d)", i.entry.Title, i.entry.Year)
}
func (i recommendationItem) Description() string {
	desc := string(i.entry.Type)
	if i.entry.Rating > 0 {
		desc = fmt.Sprintf("%s • %.1f", desc, i.entry.Rating)
	}
	if i.entry.PosterURL != "" {
		desc = fmt.Sprintf("%s • poster ✓", desc)
	}
	return desc
}
