package domain

import "strings"

// MoodAnalysis is the caller-supplied mood signal driving a recommendation.
// It is passed through to the AI backend unchanged.
type MoodAnalysis struct {
	Mood        string   `json:"mood"`
	Emotions    []string `json:"emotions"`
	Description string   `json:"description"`
}

// PreferenceSet is a deduplicated bag of taste signals used as
// recommendation input. Build one through NewPreferenceSet so the set
// semantics hold; a PreferenceSet is never mutated after construction.
type PreferenceSet struct {
	Genres  []string `json:"genres"`
	Artists []string `json:"artists"`
	Tracks  []string `json:"tracks"`
}

// NewPreferenceSet builds a PreferenceSet, collapsing repeated entries
// while preserving first-seen order. Blank entries are dropped.
func NewPreferenceSet(genres, artists, tracks []string) PreferenceSet {
	return PreferenceSet{
		Genres:  dedupe(genres),
		Artists: dedupe(artists),
		Tracks:  dedupe(tracks),
	}
}

// IsEmpty reports whether the set carries no signal at all.
func (p PreferenceSet) IsEmpty() bool {
	return len(p.Genres) == 0 && len(p.Artists) == 0 && len(p.Tracks) == 0
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
