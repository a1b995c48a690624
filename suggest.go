package clip

import "sort"

const maxSuggestions = 3

// Suggest ranks the known names closest to unknown by edit distance,
// ascending, ties broken lexically. Only candidates within
// max(2, len(unknown)/3) edits qualify; an empty slice means no usable
// suggestion and is not an error.
func Suggest(unknown string, known []string, max int) []string {
	threshold := 2
	if t := len(unknown) / 3; t > threshold {
		threshold = t
	}

	type candidate struct {
		name string
		dist int
	}
	var row []int
	candidates := []candidate{}
	for _, name := range known {
		d := editDistance(unknown, name, &row)
		if d <= threshold {
			candidates = append(candidates, candidate{name, d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}

// editDistance is the Levenshtein distance with unit costs for
// insertion, deletion and substitution, computed over a single reused
// row.
func editDistance(a, b string, row *[]int) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	if len(*row) < len(b)+1 {
		*row = make([]int, len(b)+1)
	}
	r := (*row)[:len(b)+1]
	for j := range r {
		r[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := r[0] // r[0] holds distance(a[:i-1], "")
		r[0] = i
		for j := 1; j <= len(b); j++ {
			diag := prev
			prev = r[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			r[j] = minInt(minInt(r[j]+1, r[j-1]+1), diag+cost)
		}
	}
	return r[len(b)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}
