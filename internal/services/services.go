// package services defines interfaces for interacting with provider HTTP APIs
//
// Trakt (tracking), TMDB (artwork)
package services

import (
	"context"

	"github.com/desertthunder/trackplay/internal/models"
)

// TrackingService defines the interface for the media-tracking provider client.
type TrackingService interface {
	// SetAuthToken updates the bearer token used by all subsequent
	// authorized calls on this client instance.
	SetAuthToken(token string)

	// AuthCodeURL builds the authorization URL for the consent step.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a token pair.
	Exchange(ctx context.Context, code string) (models.TokenPair, error)

	// WatchedMovies retrieves the user's movie watch history.
	WatchedMovies(ctx context.Context) ([]TraktHistoryItem, error)

	// WatchedEpisodes retrieves the user's episode watch history.
	WatchedEpisodes(ctx context.Context) ([]TraktHistoryItem, error)

	// RecommendedMovies retrieves personalized movie recommendations.
	RecommendedMovies(ctx context.Context) ([]TraktRecommendation, error)

	// RecommendedShows retrieves personalized show recommendations.
	RecommendedShows(ctx context.Context) ([]TraktRecommendation, error)

	// Name returns the name of the provider (e.g. "Trakt")
	Name() string
}

// ArtworkService defines the interface for the poster artwork provider client.
type ArtworkService interface {
	// PosterByImdbID resolves a full poster URL for the given IMDB ID and
	// media type. Returns an empty string (no error) when the provider has
	// no poster for the entry.
	PosterByImdbID(ctx context.Context, imdbID string, mediaType models.MediaType) (string, error)

	// Name returns the name of the provider (e.g. "TMDB")
	Name() string
}
