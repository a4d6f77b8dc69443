package registry

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" hint.
const maxSuggestDistance = 2

// Suggest returns the registered name closest to unknown, or "" if nothing
// is within maxSuggestDistance edits.
func (r *Registry) Suggest(unknown string) string {
	bestName := ""
	bestDistance := maxSuggestDistance + 1

	for _, name := range r.names {
		distance := levenshtein(unknown, name)
		if distance < bestDistance {
			bestDistance = distance
			bestName = name
		}
	}

	return bestName
}

// levenshtein computes the edit distance between two strings using a single
// row of the distance matrix.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}

		previous = current
	}

	return previous[len(a)]
}
