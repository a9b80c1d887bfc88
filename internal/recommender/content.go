package recommender

import (
	"math"

	"github.com/m-bikko/freedom-hackathon/internal/models"
)

// ContentScorer es la estrategia alternativa basada en contenido: codifica
// cada evento como vector one-hot de género+tipo, usa similitud coseno entre
// eventos y agrega la similitud de cada candidato contra el histórico del
// usuario. Usuarios sin histórico caen a ranking por popularidad global.
//
// Con dos features binarias el coseno queda en {0, 0.5, 1}: misma
// implementación general por si después se agregan más features.
type ContentScorer struct {
	Candidates []string
	Idx        *Indices
	Popularity map[string]float64
	History    map[string][]models.Interaction

	// vectores de features por evento, precalculados en NewContentScorer
	features map[string][]float64
}

// NewContentScorer precalcula los vectores de features de todos los eventos
// conocidos (catálogo completo, no solo candidatos: el histórico del usuario
// suele estar fuera del candidate set).
func NewContentScorer(
	candidates []string,
	idx *Indices,
	popularity map[string]float64,
	history map[string][]models.Interaction,
	events []models.EventDescription,
) *ContentScorer {

	// diccionarios de valores observados -> posición en el vector
	genrePos := make(map[string]int)
	typePos := make(map[string]int)
	for _, ev := range events {
		if ev.FilmGenre != "" {
			if _, ok := genrePos[ev.FilmGenre]; !ok {
				genrePos[ev.FilmGenre] = len(genrePos)
			}
		}
		if ev.FilmType != "" {
			if _, ok := typePos[ev.FilmType]; !ok {
				typePos[ev.FilmType] = len(typePos)
			}
		}
	}

	dim := len(genrePos) + len(typePos)
	features := make(map[string][]float64)
	for _, ev := range events {
		if _, ok := features[ev.ItemID]; ok {
			continue
		}
		vec := make([]float64, dim)
		if ev.FilmGenre != "" {
			vec[genrePos[ev.FilmGenre]] = 1
		}
		if ev.FilmType != "" {
			vec[len(genrePos)+typePos[ev.FilmType]] = 1
		}
		features[ev.ItemID] = vec
	}

	return &ContentScorer{
		Candidates: candidates,
		Idx:        idx,
		Popularity: popularity,
		History:    history,
		features:   features,
	}
}

func (s *ContentScorer) Recommend(userID string, topN int) []string {
	history := s.History[userID]

	// cold start: popularidad global
	if len(history) == 0 {
		scored := make([]ScoredCandidate, 0, len(s.Candidates))
		for _, id := range s.Candidates {
			scored = append(scored, ScoredCandidate{ItemID: id, Score: s.Popularity[id]})
		}
		return TopN(scored, topN)
	}

	// ítems ya comprados por el usuario, en orden de aparición (la suma de
	// floats debe ser determinista para que el output sea reproducible)
	owned := make(map[string]bool, len(history))
	var ownedOrder []string
	for _, it := range history {
		if !owned[it.ItemID] {
			owned[it.ItemID] = true
			ownedOrder = append(ownedOrder, it.ItemID)
		}
	}

	scored := make([]ScoredCandidate, 0, len(s.Candidates))
	for _, candID := range s.Candidates {
		if owned[candID] {
			scored = append(scored, ScoredCandidate{ItemID: candID, Score: 0})
			continue
		}
		sum := 0.0
		for _, histID := range ownedOrder {
			sum += cosine(s.features[histID], s.features[candID])
		}
		scored = append(scored, ScoredCandidate{ItemID: candID, Score: sum})
	}
	return TopN(scored, topN)
}

func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
