// package tasks orchestrates cross-provider operations: history fetches and
// recommendation fetches enriched with poster artwork.
//
// The core type is WatchEngine. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/trackplay/internal/models"
	"github.com/desertthunder/trackplay/internal/services"
	"github.com/desertthunder/trackplay/internal/shared"
)

// Engine defines the data operations the CLI and TUI consume.
type Engine interface {
	// History fetches movie and episode watch history and returns the
	// normalized, chronologically sorted list.
	History(ctx context.Context, progress chan<- ProgressUpdate) ([]models.HistoryEntry, error)

	// Recommendations fetches movie and show recommendations and enriches
	// them with poster artwork.
	Recommendations(ctx context.Context, progress chan<- ProgressUpdate) (models.Recommendations, error)
}

// WatchEngine implements [Engine] on top of the tracking and artwork clients.
type WatchEngine struct {
	tracking services.TrackingService
	artwork  services.ArtworkService

	// posterWorkers bounds the poster fan-out; zero means the default.
	posterWorkers int
}

var _ Engine = (*WatchEngine)(nil)

// NewWatchEngine creates a new WatchEngine with the provided services.
func NewWatchEngine(tracking services.TrackingService, artwork services.ArtworkService) *WatchEngine {
	return &WatchEngine{
		tracking: tracking,
		artwork:  artwork,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never blocks execution.
func (e *WatchEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// History fetches and normalizes the user's combined watch history.
func (e *WatchEngine) History(ctx context.Context, progress chan<- ProgressUpdate) ([]models.HistoryEntry, error) {
	if e.tracking == nil {
		return nil, fmt.Errorf("%w: tracking service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchHistoryUpdate(1, 2, "movies"))
	movies, err := e.tracking.WatchedMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie history: %w", err)
	}

	e.sendProgress(progress, fetchHistoryUpdate(2, 2, "episodes"))
	episodes, err := e.tracking.WatchedEpisodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch episode history: %w", err)
	}

	return services.NormalizeHistory(movies, episodes), nil
}

// Recommendations fetches recommendations for movies and shows, then runs
// the poster fan-out over both lists.
func (e *WatchEngine) Recommendations(ctx context.Context, progress chan<- ProgressUpdate) (models.Recommendations, error) {
	if e.tracking == nil {
		return models.Recommendations{}, fmt.Errorf("%w: tracking service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchRecommendationsUpdate(1, 2, "movies"))
	movies, err := e.tracking.RecommendedMovies(ctx)
	if err != nil {
		return models.Recommendations{}, fmt.Errorf("failed to fetch movie recommendations: %w", err)
	}

	e.sendProgress(progress, fetchRecommendationsUpdate(2, 2, "shows"))
	shows, err := e.tracking.RecommendedShows(ctx)
	if err != nil {
		return models.Recommendations{}, fmt.Errorf("failed to fetch show recommendations: %w", err)
	}

	recs := services.NormalizeRecommendations(movies, shows)

	recs.Movies = e.EnrichWithPosters(ctx, progress, recs.Movies)
	recs.Shows = e.EnrichWithPosters(ctx, progress, recs.Shows)

	return recs, nil
}
