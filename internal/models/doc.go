// Package models defines the normalized domain entities shared across the
// trackplay client.
//
// The package contains two categories of types:
//
// 1. Authentication state: [TokenPair], the access/refresh token pair owned
// by the credential store and mirrored transiently by the session manager.
//
// 2. Normalized entries: [HistoryEntry] and [Recommendation], reshaped from
// provider-specific JSON responses by the mappers in internal/services.
// These are derived on every fetch and never persisted.
//
// [Recommendation.DeepLink] produces the external player handoff URI
// consumed by the CLI's --open flag.
package models
