package recommender

import "github.com/m-bikko/freedom-hackathon/internal/models"

// Indices son los mapeos de lookup derivados de las dos tablas.
// Se construyen una vez, quedan congelados y después el scoring los lee
// desde varias goroutines sin locks.
//
// Regla de conflictos: en data real un usuario/evento aparece en varias
// filas con atributos secundarios contradictorios; gana la primera
// ocurrencia (determinista). Un lookup de clave desconocida devuelve ""
// (sentinela), nunca error.
type Indices struct {
	UserCity   map[string]string
	UserGender map[string]string
	UserAge    map[string]string

	EventCity  map[string]string
	EventPlace map[string]string
	EventGenre map[string]string
	EventType  map[string]string
}

// BuildIndices arma los mapeos desde las interacciones pagadas y el catálogo.
func BuildIndices(paid []models.Interaction, events []models.EventDescription) *Indices {
	idx := &Indices{
		UserCity:   make(map[string]string),
		UserGender: make(map[string]string),
		UserAge:    make(map[string]string),
		EventCity:  make(map[string]string),
		EventPlace: make(map[string]string),
		EventGenre: make(map[string]string),
		EventType:  make(map[string]string),
	}

	for _, it := range paid {
		setFirst(idx.UserCity, it.UserID, it.City)
		setFirst(idx.UserGender, it.UserID, it.Gender)
		setFirst(idx.UserAge, it.UserID, it.Age)

		// la ciudad/lugar del evento sale de las interacciones, no del catálogo
		setFirst(idx.EventCity, it.ItemID, it.City)
		setFirst(idx.EventPlace, it.ItemID, it.PlaceName)
	}

	for _, ev := range events {
		setFirst(idx.EventGenre, ev.ItemID, ev.FilmGenre)
		setFirst(idx.EventType, ev.ItemID, ev.FilmType)
	}

	return idx
}

func setFirst(m map[string]string, key, val string) {
	if key == "" || val == "" {
		return
	}
	if _, ok := m[key]; !ok {
		m[key] = val
	}
}

// ==================== Vistas derivadas ====================
// Nunca mutamos el slice cargado; cada filtro produce uno nuevo.

// FilterPaid se queda solo con interacciones con sale_status == PAID.
func FilterPaid(all []models.Interaction) []models.Interaction {
	var out []models.Interaction
	for _, it := range all {
		if it.SaleStatus == models.SaleStatusPaid {
			out = append(out, it)
		}
	}
	return out
}

// FilterSegments se queda con las filas cuyo part_dataset esté en la lista.
func FilterSegments(in []models.Interaction, segments ...string) []models.Interaction {
	want := make(map[string]bool, len(segments))
	for _, s := range segments {
		want[s] = true
	}
	var out []models.Interaction
	for _, it := range in {
		if want[it.PartDataset] {
			out = append(out, it)
		}
	}
	return out
}

// GroupByUser agrupa interacciones por usuario preservando el orden de entrada.
func GroupByUser(in []models.Interaction) map[string][]models.Interaction {
	out := make(map[string][]models.Interaction)
	for _, it := range in {
		out[it.UserID] = append(out[it.UserID], it)
	}
	return out
}

// CandidateItems devuelve los item_id únicos del catálogo con el segmento
// pedido, en orden estable de aparición (los empates del ranking dependen
// de este orden).
func CandidateItems(events []models.EventDescription, segment string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ev := range events {
		if ev.PartDataset != segment || ev.ItemID == "" {
			continue
		}
		if !seen[ev.ItemID] {
			seen[ev.ItemID] = true
			out = append(out, ev.ItemID)
		}
	}
	return out
}
