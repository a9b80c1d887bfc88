package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/models"
)

// FormatError indica que a un CSV le falta una columna obligatoria.
// Es fatal: se reporta antes de arrancar el scoring.
type FormatError struct {
	File   string
	Column string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: falta la columna obligatoria %q", e.File, e.Column)
}

// Formatos de fecha que aceptamos en reservation_time.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// header mapea nombre de columna -> índice, validando las obligatorias.
func header(record []string, file string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(record))
	for i, name := range record {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, &FormatError{File: file, Column: col}
		}
	}
	return idx, nil
}

func field(record []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// LoadInteractions carga el CSV de transacciones (train_test.csv).
func LoadInteractions(path string) ([]models.Interaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo interacciones: %w", err)
	}
	defer f.Close()
	return ReadInteractions(f, path)
}

// ReadInteractions parsea las transacciones desde cualquier reader.
// Un timestamp que no parsea NO aborta la carga: la fila queda con
// TimeValid=false y el pipeline aísla a ese usuario.
func ReadInteractions(r io.Reader, name string) ([]models.Interaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validamos por header, no por ancho

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: leyendo header: %w", name, err)
	}

	required := []string{"user_id", "item_id", "reservation_time", "sale_status", "part_dataset"}
	idx, err := header(head, name, required)
	if err != nil {
		return nil, err
	}

	var out []models.Interaction
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: leyendo fila: %w", name, err)
		}

		t, ok := parseTime(field(record, idx, "reservation_time"))

		out = append(out, models.Interaction{
			UserID:          field(record, idx, "user_id"),
			ItemID:          field(record, idx, "item_id"),
			ReservationTime: t,
			TimeValid:       ok,
			SaleStatus:      field(record, idx, "sale_status"),
			PartDataset:     field(record, idx, "part_dataset"),
			City:            field(record, idx, "city"),
			Gender:          field(record, idx, "gender_main"),
			Age:             field(record, idx, "age"),
			PlaceName:       field(record, idx, "place_name"),
		})
	}
	return out, nil
}

// LoadEvents carga el catálogo de eventos (events_description.csv).
func LoadEvents(path string) ([]models.EventDescription, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abriendo eventos: %w", err)
	}
	defer f.Close()
	return ReadEvents(f, path)
}

// ReadEvents parsea el catálogo desde cualquier reader.
func ReadEvents(r io.Reader, name string) ([]models.EventDescription, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: leyendo header: %w", name, err)
	}

	required := []string{"item_id", "part_dataset"}
	idx, err := header(head, name, required)
	if err != nil {
		return nil, err
	}

	var out []models.EventDescription
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: leyendo fila: %w", name, err)
		}

		out = append(out, models.EventDescription{
			ItemID:      field(record, idx, "item_id"),
			PartDataset: field(record, idx, "part_dataset"),
			FilmGenre:   field(record, idx, "film_genre"),
			FilmType:    field(record, idx, "film_type"),
		})
	}
	return out, nil
}
