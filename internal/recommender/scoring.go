package recommender

import (
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/models"
)

// Pesos del scorer híbrido. El orden de los tiers importa: el tier de
// frecuencia multiplica el acumulado de afinidad + temporal antes de sumar
// popularidad.
const (
	genreMatchSameCity = 6.0
	typeMatchSameCity  = 4.0
	genreMatchOther    = 3.0
	typeMatchOther     = 2.0

	dayMatchScale = 2.0

	frequentThreshold = 3.0 // > 3 eventos/mes
	mediumThreshold   = 1.0 // (1, 3]

	frequentBoost  = 1.2
	frequentPopW   = 0.1
	mediumPopW     = 0.3
	infrequentPopW = 0.7
	coldCityPopW   = 3.0
	coldGlobalPopW = 1.5
)

// Strategy es la interfaz común de los dos scorers: devuelve hasta topN
// item_ids ordenados para un usuario.
type Strategy interface {
	Recommend(userID string, topN int) []string
}

// HybridScorer combina afinidad género/tipo, matching temporal y popularidad
// (global y por ciudad) en un solo score por candidato. Es una función pura
// sobre índices congelados: seguro de evaluar en paralelo por usuario.
type HybridScorer struct {
	Candidates []string
	Idx        *Indices

	Popularity     map[string]float64
	CityPopularity map[string]map[string]float64

	Frequency        map[string]float64
	DayPrefs         map[string]map[time.Weekday]float64
	EventDayPatterns map[string]map[time.Weekday]float64

	// histórico elegible agrupado por usuario (para preferencias)
	History map[string][]models.Interaction
}

func (s *HybridScorer) Recommend(userID string, topN int) []string {
	scored := s.ScoreAll(userID)
	return TopN(scored, topN)
}

// ScoreAll evalúa todos los candidatos para un usuario, en el orden estable
// del slice de candidatos.
func (s *HybridScorer) ScoreAll(userID string) []ScoredCandidate {
	userCity := s.Idx.UserCity[userID]
	topGenres, topTypes := UserPreferences(s.History[userID], s.Idx)
	frequency := s.Frequency[userID]
	dayPrefs := s.DayPrefs[userID]

	scored := make([]ScoredCandidate, 0, len(s.Candidates))
	for _, eventID := range s.Candidates {
		scored = append(scored, ScoredCandidate{
			ItemID: eventID,
			Score:  s.scoreEvent(userID, eventID, userCity, topGenres, topTypes, frequency, dayPrefs),
		})
	}
	return scored
}

func (s *HybridScorer) scoreEvent(
	userID, eventID, userCity string,
	topGenres, topTypes []string,
	frequency float64,
	dayPrefs map[time.Weekday]float64,
) float64 {

	eventCity := s.Idx.EventCity[eventID]
	eventGenre := s.Idx.EventGenre[eventID]
	eventType := s.Idx.EventType[eventID]

	sameCity := userCity != "" && eventCity != "" && userCity == eventCity

	score := 0.0

	// 1) Afinidad género/tipo, con boost si el evento es en la ciudad del usuario
	if sameCity {
		if eventGenre != "" && contains(topGenres, eventGenre) {
			score += genreMatchSameCity
		}
		if eventType != "" && contains(topTypes, eventType) {
			score += typeMatchSameCity
		}
	} else {
		if eventGenre != "" && contains(topGenres, eventGenre) {
			score += genreMatchOther
		}
		if eventType != "" && contains(topTypes, eventType) {
			score += typeMatchOther
		}
	}

	// 2) Matching de día de semana: producto punto de las dos distribuciones.
	// Se itera en orden fijo de días: la suma de floats debe ser reproducible.
	dayMatch := 0.0
	for day := time.Sunday; day <= time.Saturday; day++ {
		pref, ok := dayPrefs[day]
		if !ok {
			continue
		}
		if pat, ok := s.EventDayPatterns[eventID][day]; ok {
			dayMatch += pref * pat
		}
	}
	score += dayMatch * dayMatchScale

	// 3) Ajuste por frecuencia de asistencia
	if frequency > 0 {
		switch {
		case frequency > frequentThreshold:
			// asistente frecuente: refuerza el matching y casi ignora popularidad
			score = score * frequentBoost
			score += s.Popularity[eventID] * frequentPopW
		case frequency > mediumThreshold:
			score += s.Popularity[eventID] * mediumPopW
		default:
			// asistente esporádico: la popularidad pesa más
			score += s.Popularity[eventID] * infrequentPopW
		}
	} else {
		// Cold start: sin histórico, solo popularidad. Si conocemos la
		// ciudad del usuario y coincide con la del evento, la popularidad
		// local manda.
		if sameCity {
			score += s.CityPopularity[userCity][eventID] * coldCityPopW
		} else {
			score += s.Popularity[eventID] * coldGlobalPopW
		}
	}

	return score
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
