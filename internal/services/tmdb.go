// TMDB API implementation of [ArtworkService]
//
// TMDB API response types based on https://developer.themoviedb.org/reference/find-by-id
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/trackplay/internal/models"
	"github.com/desertthunder/trackplay/internal/shared"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// TMDBFindResult is a single match in a /find response. Only the poster
// path is of interest here.
type TMDBFindResult struct {
	ID         int64  `json:"id"`
	PosterPath string `json:"poster_path"`
}

// TMDBFindResponse represents the /find/{externalID} response.
type TMDBFindResponse struct {
	MovieResults []TMDBFindResult `json:"movie_results"`
	TVResults    []TMDBFindResult `json:"tv_results"`
}

// TMDBService implements [ArtworkService] for the TMDB API.
type TMDBService struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpClient   *http.Client
}

var _ ArtworkService = (*TMDBService)(nil)

// NewTMDBService creates a new TMDB service with the given API key.
// The image base URL defaults to the w500 size when empty.
func NewTMDBService(apiKey, imageBaseURL string) (*TMDBService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing tmdb api_key in credentials")
	}
	if imageBaseURL == "" {
		imageBaseURL = tmdbImageBaseURL
	}

	return &TMDBService{
		baseURL:      tmdbBaseURL,
		imageBaseURL: imageBaseURL,
		apiKey:       apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (s *TMDBService) Name() string {
	return "TMDB"
}

// Find looks up TMDB records by an external (IMDB) identifier.
func (s *TMDBService) Find(ctx context.Context, imdbID string) (*TMDBFindResponse, error) {
	params := url.Values{}
	params.Set("external_source", "imdb_id")
	params.Set("api_key", s.apiKey)

	apiURL := fmt.Sprintf("%s/find/%s?%s", s.baseURL, url.PathEscape(imdbID), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: tmdb returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var found TMDBFindResponse
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &found, nil
}

// PosterByImdbID resolves a full poster URL for the given IMDB ID and media
// type. An empty string with a nil error means the provider has no poster
// for the entry.
func (s *TMDBService) PosterByImdbID(ctx context.Context, imdbID string, mediaType models.MediaType) (string, error) {
	found, err := s.Find(ctx, imdbID)
	if err != nil {
		return "", err
	}

	var results []TMDBFindResult
	if mediaType == models.MediaTypeMovie {
		results = found.MovieResults
	} else {
		results = found.TVResults
	}

	if len(results) == 0 || results[0].PosterPath == "" {
		return "", nil
	}

	return s.imageBaseURL + results[0].PosterPath, nil
}
