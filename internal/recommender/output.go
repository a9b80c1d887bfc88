package recommender

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// WriteSubmission escribe el CSV de salida: header `user_id,item_ids` y una
// fila por usuario, con los item_ids unidos por coma dentro de un solo campo
// (encoding/csv lo entrecomilla solo). El orden de usuarios lo decide el
// caller y debe ser determinista: misma entrada, salida byte a byte igual.
func WriteSubmission(path string, users []string, predictions map[string][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creando archivo de salida: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"user_id", "item_ids"}); err != nil {
		return fmt.Errorf("escribiendo header: %w", err)
	}

	for _, user := range users {
		items := predictions[user]
		if err := w.Write([]string{user, strings.Join(items, ",")}); err != nil {
			return fmt.Errorf("escribiendo fila de %s: %w", user, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("volcando salida: %w", err)
	}
	return nil
}
