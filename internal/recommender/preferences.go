package recommender

import (
	"sort"

	"github.com/m-bikko/freedom-hackathon/internal/models"
)

const (
	maxTopGenres = 3
	maxTopTypes  = 2
)

// UserPreferences devuelve los géneros y tipos más asistidos por el usuario
// en su histórico. Ítems sin género/tipo conocido se saltan. Empates se
// rompen por orden de primera aparición en el histórico (mismo orden en que
// se contó). Histórico vacío devuelve listas vacías.
func UserPreferences(history []models.Interaction, idx *Indices) (topGenres, topTypes []string) {
	topGenres = topCounted(history, idx.EventGenre, maxTopGenres)
	topTypes = topCounted(history, idx.EventType, maxTopTypes)
	return topGenres, topTypes
}

func topCounted(history []models.Interaction, lookup map[string]string, limit int) []string {
	counts := make(map[string]int)
	var order []string // primera aparición, para desempate estable

	for _, it := range history {
		val := lookup[it.ItemID]
		if val == "" {
			continue
		}
		if _, seen := counts[val]; !seen {
			order = append(order, val)
		}
		counts[val]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
