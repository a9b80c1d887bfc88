package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/config"
	"github.com/m-bikko/freedom-hackathon/internal/models"
	"github.com/m-bikko/freedom-hackathon/internal/recommender"
	"github.com/m-bikko/freedom-hackathon/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type JobHandler struct {
	cfg *config.Config
	svc *service.JobService
}

func NewJobHandler(cfg *config.Config, s *service.JobService) *JobHandler {
	return &JobHandler{cfg: cfg, svc: s}
}

// @Summary Subir los dos CSV y encolar una corrida
// @Tags jobs
// @Accept mpfd
// @Produce json
// @Param train_test formData file true "CSV de transacciones"
// @Param events_description formData file true "CSV de catálogo de eventos"
// @Param strategy formData string false "hybrid (default) o content"
// @Param topN formData int false "cantidad de recomendaciones por usuario"
// @Success 202 {object} map[string]interface{}
// @Router /jobs [post]
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	maxBytes := int64(h.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		http.Error(w, "upload demasiado grande o multipart inválido", 400)
		return
	}

	strategy := r.FormValue("strategy")
	if strategy == "" {
		strategy = models.StrategyHybrid
	}
	if strategy != models.StrategyHybrid && strategy != models.StrategyContent {
		http.Error(w, "strategy debe ser hybrid o content", 400)
		return
	}
	topN, _ := strconv.Atoi(r.FormValue("topN"))
	if topN <= 0 && strategy == models.StrategyHybrid {
		topN = h.cfg.TopN
	}

	jobID := h.svc.NewJobID()

	trainPath, err := h.saveUpload(r, "train_test", jobID)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	eventsPath, err := h.saveUpload(r, "events_description", jobID)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}

	params := recommender.Params{
		Strategy: strategy,
		TopN:     topN,
		Workers:  h.cfg.ScoreWorkers,
	}

	userID := UserIDFromContext(r.Context())
	if err := h.svc.Submit(r.Context(), jobID, userID, trainPath, eventsPath, params); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]any{"jobId": jobID})
}

// saveUpload guarda un archivo del form en la carpeta de uploads,
// prefijado con el job id. Solo se aceptan .csv.
func (h *JobHandler) saveUpload(r *http.Request, field, jobID string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("falta el archivo %s", field)
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		return "", fmt.Errorf("%s: solo se aceptan archivos .csv", field)
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(h.cfg.UploadDir, fmt.Sprintf("%s_%s.csv", jobID, field))
	if err := writeFile(path, file); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, src multipart.File) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// @Summary Estado de una corrida (polling)
// @Tags jobs
// @Produce json
// @Param id path string true "jobId"
// @Success 200 {object} models.JobStatus
// @Router /jobs/{id} [get]
func (h *JobHandler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	jobID := chi.URLParam(r, "id")

	st, err := h.svc.Status(r.Context(), jobID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if st == nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "unknown",
			"message": "Sesión no encontrada",
		})
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// @Summary Cancelar una corrida en curso
// @Tags jobs
// @Param id path string true "jobId"
// @Success 202
// @Router /jobs/{id}/cancel [post]
func (h *JobHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if !h.svc.Cancel(jobID) {
		http.Error(w, "el job no está corriendo", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// @Summary Descargar el CSV de resultados
// @Tags jobs
// @Param id path string true "jobId"
// @Success 200
// @Router /jobs/{id}/result [get]
func (h *JobHandler) Download(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	path := h.svc.ResultPath(jobID)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "resultado no disponible", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Type", "text/csv")
	http.ServeFile(w, r, path)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Progreso de una corrida en tiempo real (WebSocket)
// @Tags jobs
// @Param id path string true "jobId"
// @Success 200 {object} map[string]interface{}
// @Router /jobs/{id}/ws [get]
func (h *JobHandler) ProgressWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", 400)
		return
	}
	defer conn.Close()

	jobID := chi.URLParam(r, "id")

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, siguiendo progreso…",
	})

	// seguimos el estado en Redis hasta llegar a un estado terminal
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	deadline := time.After(30 * time.Minute)
	var lastPct = -1

	for {
		select {
		case <-deadline:
			conn.WriteJSON(map[string]any{"type": "error", "error": "timeout siguiendo el job"})
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		st, err := h.svc.Status(r.Context(), jobID)
		if err != nil {
			log.Printf("[ws] error leyendo estado de %s: %v", jobID, err)
			continue
		}
		if st == nil {
			conn.WriteJSON(map[string]any{"type": "error", "error": "job desconocido"})
			return
		}

		if st.Percentage != lastPct {
			lastPct = st.Percentage
			conn.WriteJSON(map[string]any{
				"type":       "progress",
				"msg":        st.Message,
				"percentage": st.Percentage,
			})
		}

		switch st.Status {
		case models.JobStatusCompleted:
			conn.WriteJSON(map[string]any{
				"type":        "completion",
				"success":     true,
				"msg":         st.Message,
				"resultFile":  st.ResultFile,
				"generatedAt": time.Now(),
			})
			return
		case models.JobStatusError, models.JobStatusCancelled:
			conn.WriteJSON(map[string]any{
				"type":    "completion",
				"success": false,
				"msg":     st.Message,
			})
			return
		}
	}
}

// @Summary Historial de corridas (admin)
// @Tags jobs
// @Produce json
// @Param limit query int false "máximo de corridas a listar"
// @Success 200 {array} models.Run
// @Router /admin/runs [get]
func (h *JobHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, err := h.svc.History(r.Context(), int64(limit))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if runs == nil {
		runs = []models.Run{}
	}
	_ = json.NewEncoder(w).Encode(runs)
}
