package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchHistory Phase = iota
	FetchRecommendations
	FetchPosters
)

func (p Phase) String() string {
	switch p {
	case FetchHistory:
		return "fetch_history"
	case FetchRecommendations:
		return "fetch_recommendations"
	case FetchPosters:
		return "fetch_posters"
	default:
		return ""
	}
}

func fetchHistoryUpdate(step, total int, kind string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchHistory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching watched %s...", kind),
	}
}

func fetchRecommendationsUpdate(step, total int, kind string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRecommendations,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching recommended %s...", kind),
	}
}

func fetchPostersUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPosters,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Looking up posters...", step, total),
	}
}
