package match

import (
	"sort"
	"strings"
)

// DefaultMinScore is the lowest similarity Suggest reports.
const DefaultMinScore = 0.5

// Candidate is a key with its similarity to the requested key.
type Candidate struct {
	Key   string
	Score float64
}

// Suggest returns up to limit keys from known that resemble key, best
// first. Comparison ignores case; ties keep the order of known.
func Suggest(key string, known []string, limit int, minScore float64) []Candidate {
	if limit <= 0 {
		return nil
	}

	needle := strings.ToLower(key)

	var candidates []Candidate

	for _, k := range known {
		score := LevenshteinNormalized(needle, strings.ToLower(k))
		if score >= minScore {
			candidates = append(candidates, Candidate{Key: k, Score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates
}

// SuggestKeys is Suggest reduced to the keys.
func SuggestKeys(key string, known []string, limit int) []string {
	candidates := Suggest(key, known, limit, DefaultMinScore)

	keys := make([]string, len(candidates))
	for i, c := range candidates {
		keys[i] = c.Key
	}

	return keys
}
