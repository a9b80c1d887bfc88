package recommender

import "github.com/m-bikko/freedom-hackathon/internal/models"

// GlobalPopularity calcula el score de popularidad normalizado de cada
// candidato: interacciones-del-evento / total-de-interacciones del histórico
// elegido. Un candidato sin interacciones queda en 0.0 exacto, y si el
// histórico está vacío todos quedan en 0.0 (sin división por cero).
func GlobalPopularity(interactions []models.Interaction, candidates []string) map[string]float64 {
	counts := make(map[string]int)
	for _, it := range interactions {
		counts[it.ItemID]++
	}
	total := len(interactions)

	scores := make(map[string]float64, len(candidates))
	for _, id := range candidates {
		if total > 0 {
			scores[id] = float64(counts[id]) / float64(total)
		} else {
			scores[id] = 0
		}
	}
	return scores
}

// CityPopularity calcula la misma normalización pero por ciudad, usando solo
// el subset de interacciones de esa ciudad. Las filas sin ciudad se saltan.
// Una ciudad que no aparece en el histórico simplemente no está en el mapa:
// el caller trata ciudad ausente como aporte 0.
func CityPopularity(interactions []models.Interaction, candidates []string) map[string]map[string]float64 {
	cityCounts := make(map[string]map[string]int)
	cityTotals := make(map[string]int)

	for _, it := range interactions {
		if it.City == "" {
			continue
		}
		m := cityCounts[it.City]
		if m == nil {
			m = make(map[string]int)
			cityCounts[it.City] = m
		}
		m[it.ItemID]++
		cityTotals[it.City]++
	}

	out := make(map[string]map[string]float64, len(cityCounts))
	for city, counts := range cityCounts {
		total := cityTotals[city]
		scores := make(map[string]float64, len(candidates))
		for _, id := range candidates {
			if total > 0 {
				scores[id] = float64(counts[id]) / float64(total)
			} else {
				scores[id] = 0
			}
		}
		out[city] = scores
	}
	return out
}
