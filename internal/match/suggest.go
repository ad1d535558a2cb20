package match

import "sort"

// DefaultMinSimilarity is the lowest NameSimilarity a suggestion may have.
const DefaultMinSimilarity = 0.5

// DefaultMaxSuggestions caps the number of suggestions returned by Suggest.
const DefaultMaxSuggestions = 3

type scored struct {
	name  string
	score float64
	index int
}

// Suggest ranks known names by similarity to name and returns at most limit
// of them scoring at least DefaultMinSimilarity. Ties keep the order of known.
// The name itself is never suggested.
func Suggest(name string, known []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	var candidates []scored

	for i, k := range known {
		if k == name {
			continue
		}

		score := NameSimilarity(name, k)
		if score < DefaultMinSimilarity {
			continue
		}

		candidates = append(candidates, scored{name: k, score: score, index: i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}

		return candidates[i].index < candidates[j].index
	})

	out := make([]string, 0, min(limit, len(candidates)))
	for _, c := range candidates {
		if len(out) == limit {
			break
		}

		out = append(out, c.name)
	}

	return out
}
