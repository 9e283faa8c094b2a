// Package services implements the outbound API clients for the tracking and
// artwork providers.
//
// # Tracking Provider
//
// [TraktService] wraps the Trakt REST API. Every request carries the fixed
// header set (JSON content type, API version, API key) plus a bearer token
// once the session manager has injected one via [TraktService.SetAuthToken].
// The token slot is single-writer: only the session manager writes it,
// between serialized sign-in/sign-out operations.
//
// OAuth pieces (authorization URL, code exchange) are built on
// [golang.org/x/oauth2]. There is no automatic token refresh: an expired
// token surfaces as [shared.ErrTokenExpired] and the caller re-authenticates.
//
// # Artwork Provider
//
// [TMDBService] resolves poster URLs from IMDB IDs through the /find
// endpoint. A missing poster is an empty result, not an error; only
// transport and API failures return errors.
//
// # Mappers
//
// NormalizeHistory and NormalizeRecommendations are pure functions that
// reshape provider DTOs into the [models] schema. History entries are
// stable-sorted descending by watch time; recommendation order is the
// provider's.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : no bearer token injected yet
//   - [shared.ErrTokenExpired] : provider rejected the token, reauthorization needed
//   - [shared.ErrNetwork] : transport-level failure reaching the provider
//   - [shared.ErrAPIRequest] : provider returned a non-2xx response
package services
