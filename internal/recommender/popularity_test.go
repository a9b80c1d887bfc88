package recommender

import (
	"math"
	"testing"

	"github.com/m-bikko/freedom-hackathon/internal/models"
)

func TestGlobalPopularity(t *testing.T) {
	interactions := []models.Interaction{
		paidTrain("u1", "e1", "A", monday),
		paidTrain("u2", "e1", "A", monday),
		paidTrain("u3", "e2", "B", monday),
	}
	candidates := []string{"e1", "e2", "e3"}

	pop := GlobalPopularity(interactions, candidates)

	if got := pop["e1"]; math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("e1: esperaba 2/3, obtuve %v", got)
	}
	if got := pop["e2"]; math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("e2: esperaba 1/3, obtuve %v", got)
	}
	// candidato sin interacciones: exactamente 0.0
	if got := pop["e3"]; got != 0 {
		t.Errorf("e3: esperaba 0.0 exacto, obtuve %v", got)
	}

	// los candidatos presentes en el histórico deben sumar 1.0
	sum := pop["e1"] + pop["e2"]
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("la suma de popularidad de eventos presentes debe ser 1.0, obtuve %v", sum)
	}
}

func TestGlobalPopularityEmptyHistory(t *testing.T) {
	pop := GlobalPopularity(nil, []string{"e1", "e2"})

	for _, id := range []string{"e1", "e2"} {
		if got := pop[id]; got != 0 {
			t.Errorf("%s: histórico vacío debe dar 0.0 (sin división por cero), obtuve %v", id, got)
		}
	}
}

func TestCityPopularity(t *testing.T) {
	interactions := []models.Interaction{
		paidTrain("u1", "e1", "Almaty", monday),
		paidTrain("u2", "e1", "Almaty", monday),
		paidTrain("u3", "e2", "Almaty", monday),
		paidTrain("u4", "e2", "Astana", monday),
		// fila sin ciudad: se salta
		paidTrain("u5", "e1", "", monday),
	}
	candidates := []string{"e1", "e2"}

	cityPop := CityPopularity(interactions, candidates)

	almaty, ok := cityPop["Almaty"]
	if !ok {
		t.Fatal("esperaba entrada para Almaty")
	}
	if got := almaty["e1"]; math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Almaty/e1: esperaba 2/3, obtuve %v", got)
	}

	astana := cityPop["Astana"]
	if got := astana["e2"]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Astana/e2: esperaba 1.0, obtuve %v", got)
	}

	// ciudad jamás vista: simplemente ausente
	if _, ok := cityPop["Shymkent"]; ok {
		t.Error("una ciudad sin interacciones no debe aparecer en el mapa")
	}
}
