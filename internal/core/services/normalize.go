package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/vibematch/backend/internal/core/domain"
)

// fencedJSONPattern matches a markdown code fence tagged as JSON and
// captures the object inside it.
var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// parseAttempt is one strategy in the normalization chain. ok reports
// whether the strategy produced a usable result.
type parseAttempt func(raw string) (domain.RecommendationResult, bool)

var parseChain = []parseAttempt{
	parseWholeString,
	parseFencedBlock,
	parseBraceSpan,
}

// Normalize turns free-form model output into a RecommendationResult.
// It tries, in order: the whole string as JSON, a fenced ```json block,
// the first balanced {...} span. When everything fails the raw text is
// returned verbatim as the explanation. Normalize never fails.
func Normalize(raw string) domain.RecommendationResult {
	for _, attempt := range parseChain {
		if result, ok := attempt(raw); ok {
			return result
		}
	}
	return domain.RecommendationResult{
		Tracks:            []domain.TrackSuggestion{},
		Explanation:       raw,
		AlternativeGenres: []string{},
	}
}

func parseWholeString(raw string) (domain.RecommendationResult, bool) {
	return decodeResult(strings.TrimSpace(raw))
}

func parseFencedBlock(raw string) (domain.RecommendationResult, bool) {
	match := fencedJSONPattern.FindStringSubmatch(raw)
	if match == nil {
		return domain.RecommendationResult{}, false
	}
	return decodeResult(match[1])
}

// parseBraceSpan extracts the first balanced {...} span in the text.
// Braces inside JSON strings are not accounted for; the span only needs
// to look balanced for the subsequent decode to judge it.
func parseBraceSpan(raw string) (domain.RecommendationResult, bool) {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return domain.RecommendationResult{}, false
	}

	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return decodeResult(raw[start : i+1])
			}
		}
	}
	return domain.RecommendationResult{}, false
}

func decodeResult(candidate string) (domain.RecommendationResult, bool) {
	if !strings.HasPrefix(strings.TrimSpace(candidate), "{") {
		return domain.RecommendationResult{}, false
	}

	var result domain.RecommendationResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return domain.RecommendationResult{}, false
	}

	// Field-level defaults so callers never see nil sequences.
	if result.Tracks == nil {
		result.Tracks = []domain.TrackSuggestion{}
	}
	if result.AlternativeGenres == nil {
		result.AlternativeGenres = []string{}
	}
	return result, true
}
