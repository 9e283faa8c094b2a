// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI presents two list views over the core's normalized data:
//  1. [HistoryView] : the combined watch history, newest first
//  2. [RecommendationsView] : recommendations with poster availability
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the WatchEngine, and session
// phase transitions arrive through the session manager's Subscribe channel;
// the TUI quits when the session transitions to signed-out.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, enter, r, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
