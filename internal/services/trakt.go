// Trakt API implementation of [TrackingService]
//
// Trakt API response types based on https://trakt.docs.apiary.io/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/trackplay/internal/models"
	"github.com/desertthunder/trackplay/internal/shared"
	"golang.org/x/oauth2"
)

const (
	traktAuthURL    = "https://trakt.tv/oauth/authorize"
	traktTokenURL   = "https://api.trakt.tv/oauth/token"
	traktBaseURL    = "https://api.trakt.tv"
	traktAPIVersion = "2"
)

// TraktIDs holds the identifier set attached to movies and shows.
type TraktIDs struct {
	Trakt int64  `json:"trakt"`
	Slug  string `json:"slug"`
	Imdb  string `json:"imdb"`
	Tmdb  int64  `json:"tmdb"`
}

// TraktMovie represents a movie object embedded in history responses.
type TraktMovie struct {
	Title string   `json:"title"`
	Year  int      `json:"year"`
	IDs   TraktIDs `json:"ids"`
}

// TraktShow represents a show object embedded in history responses.
type TraktShow struct {
	Title string   `json:"title"`
	Year  int      `json:"year"`
	IDs   TraktIDs `json:"ids"`
}

// TraktEpisode represents an episode object embedded in history responses.
type TraktEpisode struct {
	Season int      `json:"season"`
	Number int      `json:"number"`
	Title  string   `json:"title"`
	IDs    TraktIDs `json:"ids"`
}

// TraktHistoryItem represents one record of the /sync/history responses.
// Movie is set for movie history, Show and Episode for episode history.
type TraktHistoryItem struct {
	ID        int64         `json:"id"`
	WatchedAt time.Time     `json:"watched_at"`
	Action    string        `json:"action"`
	Type      string        `json:"type"`
	Movie     *TraktMovie   `json:"movie,omitempty"`
	Show      *TraktShow    `json:"show,omitempty"`
	Episode   *TraktEpisode `json:"episode,omitempty"`
}

// TraktRecommendation represents one record of the /recommendations responses.
type TraktRecommendation struct {
	Title  string   `json:"title"`
	Year   int      `json:"year"`
	Rating float64  `json:"rating"`
	IDs    TraktIDs `json:"ids"`
}

// TraktService implements [TrackingService] for the Trakt API.
// Uses [oauth2] for the authorization-code flow pieces.
type TraktService struct {
	oauth      *oauth2.Config
	baseURL    string
	apiKey     string
	token      string
	httpClient *http.Client
}

var _ TrackingService = (*TraktService)(nil)

// NewTraktService creates a new Trakt service with the given OAuth credentials.
func NewTraktService(credentials map[string]string) (*TraktService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("missing client_id in credentials")
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("missing client_secret in credentials")
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  traktAuthURL,
			TokenURL: traktTokenURL,
		},
	}

	return &TraktService{
		oauth:   config,
		baseURL: traktBaseURL,
		apiKey:  clientID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (s *TraktService) Name() string {
	return "Trakt"
}

// SetAuthToken updates the bearer token for subsequent authorized calls.
// Single-writer: only the session manager calls this, between serialized
// operations, never concurrently with an in-flight batch of requests.
func (s *TraktService) SetAuthToken(token string) {
	s.token = token
}

// AuthCodeURL returns the authorization URL for the consent step, carrying
// response_type=code, client_id, redirect_uri and the state parameter.
func (s *TraktService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for a token pair at the token endpoint.
func (s *TraktService) Exchange(ctx context.Context, code string) (models.TokenPair, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("token exchange failed: %w", err)
	}

	pair := models.TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if v, ok := token.Extra("expires_in").(float64); ok {
		pair.ExpiresIn = int64(v)
	} else if !token.Expiry.IsZero() {
		pair.ExpiresIn = int64(time.Until(token.Expiry).Seconds())
	}

	if !pair.Valid() {
		return models.TokenPair{}, fmt.Errorf("%w: token response missing access or refresh token", shared.ErrAuthFailed)
	}

	return pair, nil
}

// doRequest performs an authenticated GET request against the Trakt API.
func (s *TraktService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == "" {
		return fmt.Errorf("%w: sign in first", shared.ErrNotAuthenticated)
	}

	apiURL := s.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("trakt-api-version", traktAPIVersion)
	req.Header.Set("trakt-api-key", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: trakt returned status %d", shared.ErrTokenExpired, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: trakt returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// WatchedMovies retrieves the user's movie watch history.
func (s *TraktService) WatchedMovies(ctx context.Context) ([]TraktHistoryItem, error) {
	var items []TraktHistoryItem
	if err := s.doRequest(ctx, "/sync/history/movies", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// WatchedEpisodes retrieves the user's episode watch history.
func (s *TraktService) WatchedEpisodes(ctx context.Context) ([]TraktHistoryItem, error) {
	var items []TraktHistoryItem
	if err := s.doRequest(ctx, "/sync/history/episodes", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// RecommendedMovies retrieves personalized movie recommendations.
func (s *TraktService) RecommendedMovies(ctx context.Context) ([]TraktRecommendation, error) {
	var items []TraktRecommendation
	if err := s.doRequest(ctx, "/recommendations/movies", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// RecommendedShows retrieves personalized show recommendations.
func (s *TraktService) RecommendedShows(ctx context.Context) ([]TraktRecommendation, error) {
	var items []TraktRecommendation
	if err := s.doRequest(ctx, "/recommendations/shows", &items); err != nil {
		return nil, err
	}
	return items, nil
}
