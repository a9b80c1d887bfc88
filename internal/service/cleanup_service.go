package service

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/config"
)

// StartCleanup lanza el barrido periódico que borra uploads y resultados
// más viejos que la retención configurada. Corre en background hasta que el
// proceso muera.
func StartCleanup(cfg *config.Config) {
	retention := time.Duration(cfg.RetentionHours) * time.Hour

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			sweepOldFiles(cfg.UploadDir, retention)
			sweepOldFiles(cfg.ResultDir, retention)
			<-ticker.C
		}
	}()
}

func sweepOldFiles(dir string, retention time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// la carpeta puede no existir todavía
		return
	}

	cutoff := time.Now().Add(-retention)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				log.Printf("[cleanup] error borrando %s: %v", path, err)
			}
		}
	}
}
