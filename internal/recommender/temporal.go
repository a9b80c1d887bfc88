package recommender

import (
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/models"
)

// UserTemporal reúne los patrones temporales por usuario: frecuencia mensual
// de asistencia e histogramas normalizados de día de semana y hora del día.
type UserTemporal struct {
	Frequency map[string]float64
	DayPrefs  map[string]map[time.Weekday]float64
	HourPrefs map[string]map[int]float64
}

// ExtractUserTemporal calcula los patrones de cada usuario presente en el
// histórico. Las filas con timestamp inválido se saltan. Un usuario sin
// filas válidas queda con frecuencia 0 y distribuciones vacías (no es error:
// es el camino cold start).
//
// monthsActive = (añoMax*12+mesMax) - (añoMin*12+mesMin) + 1, con piso en 1:
// toda la actividad dentro de un mismo mes da frecuencia == conteo crudo.
// Es una decisión explícita del modelo ("conteo en ventana activa"), no una
// normalización por días calendario.
func ExtractUserTemporal(interactions []models.Interaction) *UserTemporal {
	ut := &UserTemporal{
		Frequency: make(map[string]float64),
		DayPrefs:  make(map[string]map[time.Weekday]float64),
		HourPrefs: make(map[string]map[int]float64),
	}

	type span struct {
		min, max time.Time
		count    int
	}
	spans := make(map[string]*span)
	dayCounts := make(map[string]map[time.Weekday]int)
	hourCounts := make(map[string]map[int]int)

	for _, it := range interactions {
		if !it.TimeValid {
			continue
		}
		sp := spans[it.UserID]
		if sp == nil {
			sp = &span{min: it.ReservationTime, max: it.ReservationTime}
			spans[it.UserID] = sp
		} else {
			if it.ReservationTime.Before(sp.min) {
				sp.min = it.ReservationTime
			}
			if it.ReservationTime.After(sp.max) {
				sp.max = it.ReservationTime
			}
		}
		sp.count++

		dc := dayCounts[it.UserID]
		if dc == nil {
			dc = make(map[time.Weekday]int)
			dayCounts[it.UserID] = dc
		}
		dc[it.ReservationTime.Weekday()]++

		hc := hourCounts[it.UserID]
		if hc == nil {
			hc = make(map[int]int)
			hourCounts[it.UserID] = hc
		}
		hc[it.ReservationTime.Hour()]++
	}

	for user, sp := range spans {
		ut.Frequency[user] = float64(sp.count) / float64(monthsActive(sp.min, sp.max))
		ut.DayPrefs[user] = normalizeDays(dayCounts[user])
		ut.HourPrefs[user] = normalizeHours(hourCounts[user])
	}

	return ut
}

// ExtractEventTemporal calcula los histogramas simétricos del lado del
// evento, restringidos al histórico elegible del candidato. Un evento sin
// interacciones queda con distribuciones vacías.
func ExtractEventTemporal(interactions []models.Interaction, candidates []string) (map[string]map[time.Weekday]float64, map[string]map[int]float64) {
	dayCounts := make(map[string]map[time.Weekday]int)
	hourCounts := make(map[string]map[int]int)

	want := make(map[string]bool, len(candidates))
	for _, id := range candidates {
		want[id] = true
	}

	for _, it := range interactions {
		if !it.TimeValid || !want[it.ItemID] {
			continue
		}
		dc := dayCounts[it.ItemID]
		if dc == nil {
			dc = make(map[time.Weekday]int)
			dayCounts[it.ItemID] = dc
		}
		dc[it.ReservationTime.Weekday()]++

		hc := hourCounts[it.ItemID]
		if hc == nil {
			hc = make(map[int]int)
			hourCounts[it.ItemID] = hc
		}
		hc[it.ReservationTime.Hour()]++
	}

	dayPatterns := make(map[string]map[time.Weekday]float64, len(dayCounts))
	hourPatterns := make(map[string]map[int]float64, len(hourCounts))
	for id, dc := range dayCounts {
		dayPatterns[id] = normalizeDays(dc)
	}
	for id, hc := range hourCounts {
		hourPatterns[id] = normalizeHours(hc)
	}
	return dayPatterns, hourPatterns
}

func monthsActive(min, max time.Time) int {
	months := (max.Year()*12 + int(max.Month())) - (min.Year()*12 + int(min.Month())) + 1
	if months < 1 {
		months = 1
	}
	return months
}

func normalizeDays(counts map[time.Weekday]int) map[time.Weekday]float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make(map[time.Weekday]float64, len(counts))
	if total == 0 {
		return out
	}
	for day, c := range counts {
		out[day] = float64(c) / float64(total)
	}
	return out
}

func normalizeHours(counts map[int]int) map[int]float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make(map[int]float64, len(counts))
	if total == 0 {
		return out
	}
	for hour, c := range counts {
		out[hour] = float64(c) / float64(total)
	}
	return out
}
