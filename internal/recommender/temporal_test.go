package recommender

import (
	"math"
	"testing"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/models"
)

func TestMonthlyFrequency(t *testing.T) {
	tests := []struct {
		name  string
		times []time.Time
		want  float64
	}{
		{
			name: "tres meses activos",
			times: []time.Time{
				time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
				time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
			},
			want: 1.0, // 3 interacciones / 3 meses
		},
		{
			name: "todo dentro de un mes: frecuencia = conteo crudo",
			times: []time.Time{
				time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 30, 12, 0, 0, 0, time.UTC),
			},
			want: 2.0,
		},
		{
			name: "cruce de año",
			times: []time.Time{
				time.Date(2023, 12, 20, 12, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
			},
			want: 1.0, // 2 interacciones / 2 meses
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var interactions []models.Interaction
			for _, ts := range tt.times {
				interactions = append(interactions, paidTrain("u1", "e1", "A", ts))
			}

			ut := ExtractUserTemporal(interactions)
			if got := ut.Frequency["u1"]; math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("frecuencia: esperaba %v, obtuve %v", tt.want, got)
			}
		})
	}
}

func TestUserTemporalColdUser(t *testing.T) {
	// usuario sin filas: frecuencia 0 y distribuciones vacías, sin error
	ut := ExtractUserTemporal(nil)

	if got := ut.Frequency["fantasma"]; got != 0 {
		t.Errorf("usuario sin histórico debe tener frecuencia 0, obtuve %v", got)
	}
	if prefs := ut.DayPrefs["fantasma"]; len(prefs) != 0 {
		t.Errorf("usuario sin histórico debe tener preferencias vacías, obtuve %v", prefs)
	}
}

func TestUserTemporalSkipsInvalidTimestamps(t *testing.T) {
	bad := paidTrain("u1", "e1", "A", time.Time{})
	bad.TimeValid = false

	ut := ExtractUserTemporal([]models.Interaction{bad})
	if got := ut.Frequency["u1"]; got != 0 {
		t.Errorf("filas con timestamp inválido no deben contar, obtuve frecuencia %v", got)
	}
}

func TestDayPreferencesNormalized(t *testing.T) {
	interactions := []models.Interaction{
		paidTrain("u1", "e1", "A", monday),                     // lunes
		paidTrain("u1", "e2", "A", monday),                     // lunes
		paidTrain("u1", "e3", "A", monday.AddDate(0, 0, 5)),    // sábado
		paidTrain("u1", "e4", "A", monday.Add(4*time.Hour)),    // lunes
	}

	ut := ExtractUserTemporal(interactions)
	prefs := ut.DayPrefs["u1"]

	if got := prefs[time.Monday]; math.Abs(got-0.75) > 1e-9 {
		t.Errorf("lunes: esperaba 0.75, obtuve %v", got)
	}
	if got := prefs[time.Saturday]; math.Abs(got-0.25) > 1e-9 {
		t.Errorf("sábado: esperaba 0.25, obtuve %v", got)
	}

	// los días observados suman 1
	sum := 0.0
	for _, v := range prefs {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("la distribución de días debe sumar 1.0, obtuve %v", sum)
	}
	// los días no observados no se materializan como ceros
	if _, ok := prefs[time.Wednesday]; ok {
		t.Error("un día sin asistencia no debe aparecer en la distribución")
	}
}

func TestEventTemporalPatterns(t *testing.T) {
	interactions := []models.Interaction{
		paidTrain("u1", "e1", "A", monday),
		paidTrain("u2", "e1", "A", monday.AddDate(0, 0, 5)), // sábado
		paidTrain("u3", "e9", "A", monday),                  // fuera de candidatos
	}

	dayPatterns, hourPatterns := ExtractEventTemporal(interactions, []string{"e1", "e2"})

	if got := dayPatterns["e1"][time.Monday]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("e1/lunes: esperaba 0.5, obtuve %v", got)
	}
	if got := hourPatterns["e1"][10]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("e1/hora 10: esperaba 1.0, obtuve %v", got)
	}

	// candidato sin interacciones: distribución vacía, no error
	if len(dayPatterns["e2"]) != 0 {
		t.Errorf("e2 sin interacciones debe quedar vacío, obtuve %v", dayPatterns["e2"])
	}
	// evento fuera del candidate set no se materializa
	if _, ok := dayPatterns["e9"]; ok {
		t.Error("eventos fuera del candidate set no deben aparecer")
	}
}
