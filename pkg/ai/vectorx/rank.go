package vectorx

import "sort"

// Rank scores records against vector, drops those failing filter and
// returns the best limit matches, highest score first. Ties keep
// insertion order.
func Rank(records []Record, vector []float64, filter Filter, limit int) []Match {
	matches := make([]Match, 0, len(records))
	for _, r := range records {
		if !filter.Matches(r.Metadata) {
			continue
		}
		matches = append(matches, Match{Document: r.Document, Score: Cosine(vector, r.Vector)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
