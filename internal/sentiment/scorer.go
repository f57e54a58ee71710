// Package sentiment provides a word-list heuristic for scoring the tone of a
// communication. It is the local fallback used when no external analysis is
// available for a project.
package sentiment

import "strings"

const (
	neutralBaseline = 50
	negativeWeight  = 15
	positiveWeight  = 10
)

// Fixed signal terms, matched as substrings of the lower-cased input. A term
// appearing multiple times still counts once; distinct terms compound.
var (
	negativeTerms = []string{
		"angry", "mad", "frustrated", "unacceptable", "disappointed",
		"fail", "urgent", "broken", "missed", "late",
	}
	positiveTerms = []string{
		"happy", "great", "excited", "thanks", "good",
		"success", "love", "approve",
	}
)

// Score rates the tone of text on a 0-100 scale, where 0 is extremely
// negative and 100 extremely positive. Empty or whitespace-only text yields
// the neutral baseline of 50.
func Score(text string) int {
	lower := strings.ToLower(text)
	score := neutralBaseline

	for _, term := range negativeTerms {
		if strings.Contains(lower, term) {
			score -= negativeWeight
		}
	}
	for _, term := range positiveTerms {
		if strings.Contains(lower, term) {
			score += positiveWeight
		}
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
