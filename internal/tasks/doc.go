// Package tasks implements the cross-provider operations behind the CLI
// and TUI: watch-history fetches and recommendation fetches with poster
// enrichment.
//
// # Engine
//
// [WatchEngine] holds the tracking and artwork clients and exposes
// [WatchEngine.History] and [WatchEngine.Recommendations]. Both accept an
// optional progress channel; updates are sent non-blocking so a slow or
// absent consumer never stalls a fetch.
//
// # Poster fan-out
//
// [WatchEngine.EnrichWithPosters] runs the artwork lookups as an unordered
// concurrent fan-out over a bounded worker pool and joins all results
// before returning. The policy is fail-soft per item: a lookup failure
// leaves that entry without a poster and does not abort the batch.
package tasks
