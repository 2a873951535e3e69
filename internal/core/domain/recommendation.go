package domain

// TrackSuggestion is one recommended track produced by the normalizer.
type TrackSuggestion struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Reason string `json:"reason"`
}

// RecommendationResult is the normalized output of one completion call.
// The JSON tags match the shape the AI backend is prompted to return.
// A result is never mutated after creation.
type RecommendationResult struct {
	Tracks            []TrackSuggestion `json:"recommended_tracks"`
	Explanation       string            `json:"explanation"`
	AlternativeGenres []string          `json:"alternative_genres"`
}

// RecommendationPair holds the two results of one orchestration call,
// always in (global, personal) order.
type RecommendationPair struct {
	Global   RecommendationResult `json:"global"`
	Personal RecommendationResult `json:"personal"`
}
