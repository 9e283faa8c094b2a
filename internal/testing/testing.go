// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/trackplay/internal/models"
	"github.com/desertthunder/trackplay/internal/services"
)

// MockTracking is a test double for [services.TrackingService].
type MockTracking struct {
	Token    string
	AuthURL  string
	Pair     models.TokenPair
	Movies   []services.TraktHistoryItem
	Episodes []services.TraktHistoryItem
	RecMovs  []services.TraktRecommendation
	RecShows []services.TraktRecommendation
	Err      error

	ExchangeCalls []string
}

var _ services.TrackingService = (*MockTracking)(nil)

func (m *MockTracking) SetAuthToken(token string) { m.Token = token }

func (m *MockTracking) AuthCodeURL(state string) string {
	if m.AuthURL != "" {
		return m.AuthURL + "&state=" + state
	}
	return "https://example.com/oauth/authorize?state=" + state
}

func (m *MockTracking) Exchange(ctx context.Context, code string) (models.TokenPair, error) {
	m.ExchangeCalls = append(m.ExchangeCalls, code)
	if m.Err != nil {
		return models.TokenPair{}, m.Err
	}
	return m.Pair, nil
}

func (m *MockTracking) WatchedMovies(ctx context.Context) ([]services.TraktHistoryItem, error) {
	return m.Movies, m.Err
}

func (m *MockTracking) WatchedEpisodes(ctx context.Context) ([]services.TraktHistoryItem, error) {
	return m.Episodes, m.Err
}

func (m *MockTracking) RecommendedMovies(ctx context.Context) ([]services.TraktRecommendation, error) {
	return m.RecMovs, m.Err
}

func (m *MockTracking) RecommendedShows(ctx context.Context) ([]services.TraktRecommendation, error) {
	return m.RecShows, m.Err
}

func (m *MockTracking) Name() string { return "mock-tracking" }

// MockArtwork is a test double for [services.ArtworkService]. Posters maps
// IMDB IDs to URLs; Fail lists IMDB IDs whose lookup errors.
type MockArtwork struct {
	mu      sync.Mutex
	Posters map[string]string
	Fail    map[string]bool

	Lookups []string
}

var _ services.ArtworkService = (*MockArtwork)(nil)

func (m *MockArtwork) PosterByImdbID(ctx context.Context, imdbID string, mediaType models.MediaType) (string, error) {
	m.mu.Lock()
	m.Lookups = append(m.Lookups, imdbID)
	m.mu.Unlock()

	if m.Fail[imdbID] {
		return "", errors.New("lookup failed")
	}
	return m.Posters[imdbID], nil
}

func (m *MockArtwork) Name() string { return "mock-artwork" }

// LookupCount returns how many lookups were issued.
func (m *MockArtwork) LookupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Lookups)
}

// MockStore is an in-memory credential store with switchable failures.
type MockStore struct {
	Pair     models.TokenPair
	HasPair  bool
	SetErr   error
	ClearErr error
	GetFails bool
}

func (m *MockStore) Get(ctx context.Context) (models.TokenPair, bool) {
	if m.GetFails || !m.HasPair {
		return models.TokenPair{}, false
	}
	return m.Pair, true
}

func (m *MockStore) Set(ctx context.Context, pair models.TokenPair) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Pair = pair
	m.HasPair = true
	return nil
}

func (m *MockStore) Clear(ctx context.Context) error {
	m.Pair = models.TokenPair{}
	m.HasPair = false
	return m.ClearErr
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
