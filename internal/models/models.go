// package models defines the data model for the watch tracking client
package models

import (
	"fmt"
	"time"
)

// MediaType distinguishes movies from shows in normalized entries.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeShow  MediaType = "show"
)

// TokenPair holds the access/refresh token pair issued by the tracking
// provider's OAuth token endpoint.
//
// A pair is only usable when both tokens are present; partial pairs are
// never persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Valid reports whether both tokens of the pair are present.
func (t TokenPair) Valid() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// HistoryEntry is a normalized watch-history record derived from the
// tracking provider's movie and episode history responses.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Type      MediaType `json:"type"`
	WatchedAt time.Time `json:"watched_at"`
}

// Recommendation is a normalized recommendation record. PosterURL is
// populated after the fact by the artwork lookup; it stays empty when the
// entry has no IMDB ID or the lookup fails.
type Recommendation struct {
	ID        int64     `json:"id"`
	ImdbID    string    `json:"imdb_id,omitempty"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Type      MediaType `json:"type"`
	Rating    float64   `json:"rating,omitempty"`
	PosterURL string    `json:"poster_url,omitempty"`
}

// Recommendations groups recommendation entries by media type, preserving
// provider order within each group.
type Recommendations struct {
	Movies []Recommendation `json:"movies"`
	Shows  []Recommendation `json:"shows"`
}

// All returns movies followed by shows as a single slice.
func (r Recommendations) All() []Recommendation {
	all := make([]Recommendation, 0, len(r.Movies)+len(r.Shows))
	all = append(all, r.Movies...)
	all = append(all, r.Shows...)
	return all
}

// DeepLink builds the external player URI for a recommendation. Movies
// link to the detail page with the video preselected, shows link to the
// series page.
func (r Recommendation) DeepLink() (string, error) {
	if r.ImdbID == "" {
		return "", fmt.Errorf("no IMDB ID available for %q", r.Title)
	}

	if r.Type == MediaTypeMovie {
		return fmt.Sprintf("stremio:///detail/movie/%s/%s", r.ImdbID, r.ImdbID), nil
	}
	return fmt.Sprintf("stremio:///detail/series/%s", r.ImdbID), nil
}
