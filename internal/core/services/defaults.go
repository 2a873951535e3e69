package services

import "github.com/vibematch/backend/internal/core/domain"

// DefaultPreferences is the static global taste profile used for the
// global half of every recommendation pair, and as the personal half
// when the caller brings no preferences of their own.
func DefaultPreferences() domain.PreferenceSet {
	return domain.NewPreferenceSet(
		[]string{"pop", "electronic", "indie"},
		[]string{"The Weeknd", "Dua Lipa", "Post Malone"},
		[]string{"Blinding Lights", "Levitating", "Circles"},
	)
}
