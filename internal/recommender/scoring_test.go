package recommender

import (
	"math"
	"testing"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/models"
)

// scorer mínimo con un usuario "u1" de ciudad Almaty y género favorito Action
func newTestScorer(frequency float64) *HybridScorer {
	history := []models.Interaction{
		paidTrain("u1", "h1", "Almaty", monday),
	}
	return &HybridScorer{
		Candidates: []string{"e1", "e2"},
		Idx: &Indices{
			UserCity:   map[string]string{"u1": "Almaty"},
			EventCity:  map[string]string{"h1": "Almaty", "e1": "Almaty", "e2": "Astana"},
			EventGenre: map[string]string{"h1": "Action", "e1": "Action", "e2": "Action"},
			EventType:  map[string]string{},
		},
		Popularity:       map[string]float64{"e1": 0, "e2": 0},
		CityPopularity:   map[string]map[string]float64{},
		Frequency:        map[string]float64{"u1": frequency},
		DayPrefs:         map[string]map[time.Weekday]float64{},
		EventDayPatterns: map[string]map[time.Weekday]float64{},
		History:          map[string][]models.Interaction{"u1": history},
	}
}

func TestCityMatchBoostDominates(t *testing.T) {
	// dos eventos idénticos salvo la ciudad: el de la ciudad del usuario
	// debe puntuar estrictamente más alto (6 vs 3 en el tier de afinidad)
	s := newTestScorer(2.0)

	scored := s.ScoreAll("u1")
	byID := map[string]float64{}
	for _, sc := range scored {
		byID[sc.ItemID] = sc.Score
	}

	if byID["e1"] <= byID["e2"] {
		t.Errorf("el evento en la ciudad del usuario debe ganar: e1=%v e2=%v", byID["e1"], byID["e2"])
	}
	if math.Abs(byID["e1"]-6.0) > 1e-9 {
		t.Errorf("e1: esperaba 6.0 (género en misma ciudad), obtuve %v", byID["e1"])
	}
	if math.Abs(byID["e2"]-3.0) > 1e-9 {
		t.Errorf("e2: esperaba 3.0 (género en otra ciudad), obtuve %v", byID["e2"])
	}
}

func TestFrequentUserTierOrder(t *testing.T) {
	// el multiplicador x1.2 aplica sobre afinidad+temporal ANTES de sumar
	// popularidad: score = 6*1.2 + pop*0.1
	s := newTestScorer(5.0)
	s.Popularity["e1"] = 0.5

	scored := s.ScoreAll("u1")
	want := 6.0*1.2 + 0.5*0.1
	if got := scored[0].Score; math.Abs(got-want) > 1e-9 {
		t.Errorf("usuario frecuente: esperaba %v, obtuve %v", want, got)
	}
}

func TestMediumAndInfrequentPopularityWeights(t *testing.T) {
	tests := []struct {
		name      string
		frequency float64
		popWeight float64
	}{
		{"frecuencia media (1,3]", 2.0, 0.3},
		{"frecuencia baja (0,1]", 0.5, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScorer(tt.frequency)
			s.Popularity["e1"] = 0.4

			scored := s.ScoreAll("u1")
			want := 6.0 + 0.4*tt.popWeight
			if got := scored[0].Score; math.Abs(got-want) > 1e-9 {
				t.Errorf("esperaba %v, obtuve %v", want, got)
			}
		})
	}
}

func TestColdStartUsesCityPopularity(t *testing.T) {
	s := newTestScorer(0)
	// usuario sin histórico en absoluto
	s.History = map[string][]models.Interaction{}
	s.Frequency = map[string]float64{}
	s.Popularity = map[string]float64{"e1": 0.2, "e2": 0.2}
	s.CityPopularity = map[string]map[string]float64{
		"Almaty": {"e1": 0.9},
	}

	scored := s.ScoreAll("u1")
	byID := map[string]float64{}
	for _, sc := range scored {
		byID[sc.ItemID] = sc.Score
	}

	// e1 comparte ciudad: popularidad local x3; e2 cae a global x1.5
	if got := byID["e1"]; math.Abs(got-0.9*3) > 1e-9 {
		t.Errorf("e1 cold start misma ciudad: esperaba %v, obtuve %v", 0.9*3, got)
	}
	if got := byID["e2"]; math.Abs(got-0.2*1.5) > 1e-9 {
		t.Errorf("e2 cold start otra ciudad: esperaba %v, obtuve %v", 0.2*1.5, got)
	}
}

func TestColdStartUnknownUserDoesNotPanic(t *testing.T) {
	s := newTestScorer(1.0)

	// usuario jamás visto: todos los lookups devuelven sentinela y el
	// score sale del camino cold start, sin error
	items := s.Recommend("desconocido", 10)
	if len(items) != 2 {
		t.Errorf("usuario desconocido debe recibir ranking completo, obtuve %v", items)
	}
}

func TestDayMatchTier(t *testing.T) {
	s := newTestScorer(2.0)
	// quitamos la afinidad para aislar el tier temporal
	s.Idx.EventGenre = map[string]string{}
	s.DayPrefs = map[string]map[time.Weekday]float64{
		"u1": {time.Monday: 0.75, time.Saturday: 0.25},
	}
	s.EventDayPatterns = map[string]map[time.Weekday]float64{
		"e1": {time.Monday: 0.5, time.Wednesday: 0.5},
	}

	scored := s.ScoreAll("u1")
	// solo lunes está en ambas distribuciones: 0.75*0.5*2
	want := 0.75 * 0.5 * 2
	if got := scored[0].Score; math.Abs(got-want) > 1e-9 {
		t.Errorf("day match: esperaba %v, obtuve %v", want, got)
	}
}
