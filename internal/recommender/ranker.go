package recommender

import "sort"

// ScoredCandidate es un par (item, score) transitorio dentro de una pasada
// de scoring.
type ScoredCandidate struct {
	ItemID string
	Score  float64
}

// TopN ordena por score descendente con desempate estable (se preserva el
// orden de iteración de los candidatos) y trunca a n. El resultado puede ser
// más corto que n si hay menos candidatos.
func TopN(scored []ScoredCandidate, n int) []string {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	out := make([]string, 0, len(scored))
	for _, sc := range scored {
		out = append(out, sc.ItemID)
	}
	return out
}
