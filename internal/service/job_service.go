package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/cache"
	"github.com/m-bikko/freedom-hackathon/internal/config"
	"github.com/m-bikko/freedom-hackathon/internal/models"
	"github.com/m-bikko/freedom-hackathon/internal/recommender"
	"github.com/m-bikko/freedom-hackathon/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const jobQueueSize = 16

// JobService es la cola de corridas del pipeline: un buffer acotado + un
// pool fijo de workers (nada de un thread suelto por request). El estado
// transitorio vive en Redis, el historial en Mongo.
type JobService struct {
	cfg  *config.Config
	runs *repository.RunRepository

	queue chan *jobTask

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

type jobTask struct {
	id         string
	userID     int
	trainPath  string
	eventsPath string
	outPath    string
	params     recommender.Params
}

func NewJobService(cfg *config.Config, runs *repository.RunRepository) *JobService {
	s := &JobService{
		cfg:     cfg,
		runs:    runs,
		queue:   make(chan *jobTask, jobQueueSize),
		cancels: make(map[string]context.CancelFunc),
	}

	workers := cfg.JobWorkers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		go s.worker(i)
	}
	return s
}

// NewJobID genera el identificador de una corrida. El handler lo pide antes
// de guardar los archivos subidos para poder prefijarlos con el id.
func (s *JobService) NewJobID() string {
	return uuid.NewString()
}

// Submit encola una corrida ya identificada. Si la cola está llena devuelve
// error en vez de aceptar trabajo sin límite.
func (s *JobService) Submit(ctx context.Context, jobID string, userID int, trainPath, eventsPath string, params recommender.Params) error {
	task := &jobTask{
		id:         jobID,
		userID:     userID,
		trainPath:  trainPath,
		eventsPath: eventsPath,
		outPath:    filepath.Join(s.cfg.ResultDir, jobID+"_result.csv"),
		params:     params,
	}

	if err := cache.SetJobStatus(ctx, jobID, &models.JobStatus{
		Status:     models.JobStatusStarting,
		Message:    "Corrida en cola...",
		Percentage: 0,
	}); err != nil {
		log.Printf("[jobs] error guardando estado inicial de %s: %v", jobID, err)
	}

	if s.runs != nil {
		run := &models.Run{
			ID:     jobID,
			UserID: userID,
			Params: models.RunParams{
				Strategy: params.Strategy,
				TopN:     params.TopN,
				Workers:  params.Workers,
			},
			Status:    models.JobStatusStarting,
			CreatedAt: time.Now(),
		}
		if err := s.runs.Insert(ctx, run); err != nil {
			log.Printf("[jobs] error guardando run %s en Mongo: %v", jobID, err)
		}
	}

	select {
	case s.queue <- task:
		return nil
	default:
		s.finish(jobID, models.JobStatusError, "cola de trabajos llena, intenta más tarde", nil, 0)
		return fmt.Errorf("cola de trabajos llena (%d pendientes)", jobQueueSize)
	}
}

// Cancel dispara la cancelación cooperativa de una corrida en curso.
func (s *JobService) Cancel(jobID string) bool {
	s.mu.Lock()
	cancel, ok := s.cancels[jobID]
	s.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// Status lee el estado transitorio desde Redis; si ya expiró cae al
// historial de Mongo.
func (s *JobService) Status(ctx context.Context, jobID string) (*models.JobStatus, error) {
	st, ok, err := cache.GetJobStatus(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if ok {
		return st, nil
	}

	if s.runs != nil {
		run, err := s.runs.FindByID(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if run != nil {
			return &models.JobStatus{
				Status:     run.Status,
				Message:    run.Message,
				Percentage: 100,
				ResultFile: run.OutputFile,
			}, nil
		}
	}
	return nil, nil
}

// ResultPath devuelve la ruta del CSV de salida de un job.
func (s *JobService) ResultPath(jobID string) string {
	return filepath.Join(s.cfg.ResultDir, jobID+"_result.csv")
}

// History lista las corridas recientes desde Mongo.
func (s *JobService) History(ctx context.Context, limit int64) ([]models.Run, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.FindRecent(ctx, limit)
}

// ==================== Workers ====================

func (s *JobService) worker(n int) {
	for task := range s.queue {
		s.runJob(n, task)
	}
}

func (s *JobService) runJob(n int, task *jobTask) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.cancels[task.id] = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		delete(s.cancels, task.id)
		s.mu.Unlock()
	}()

	log.Printf("[jobs] worker %d arranca job %s (strategy=%s topN=%d)",
		n, task.id, task.params.Strategy, task.params.TopN)

	sink := &redisSink{jobID: task.id}
	res, elapsed, err := recommender.RunTimed(ctx, task.trainPath, task.eventsPath, task.outPath, task.params, sink)

	switch {
	case err == nil:
		log.Printf("[jobs] job %s completado: users=%d skipped=%d precision=%.4f tiempo=%s",
			task.id, res.Users, res.SkippedUsers, res.PrecisionAtN, elapsed)
		s.finish(task.id, models.JobStatusCompleted, "Proceso completado correctamente", res, elapsed)

	case ctx.Err() != nil:
		log.Printf("[jobs] job %s cancelado", task.id)
		s.finish(task.id, models.JobStatusCancelled, "Corrida cancelada por el usuario", nil, elapsed)

	default:
		log.Printf("[jobs] job %s falló: %v", task.id, err)
		s.finish(task.id, models.JobStatusError, fmt.Sprintf("Error durante el proceso: %v", err), nil, elapsed)
	}
}

// finish publica el estado terminal en Redis y cierra el run en Mongo.
func (s *JobService) finish(jobID, status, message string, res *recommender.Result, elapsed time.Duration) {
	ctx, cancelCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelCtx()

	st := &models.JobStatus{
		Status:     status,
		Message:    message,
		Percentage: 100,
	}
	if res != nil {
		st.ResultFile = filepath.Base(res.OutputPath)
	}
	if err := cache.SetJobStatus(ctx, jobID, st); err != nil {
		log.Printf("[jobs] error guardando estado terminal de %s: %v", jobID, err)
	}

	if s.runs == nil {
		return
	}

	now := time.Now()
	update := bson.M{
		"status":     status,
		"message":    message,
		"finishedAt": now,
		"durationMs": elapsed.Milliseconds(),
	}
	if res != nil {
		update["outputFile"] = filepath.Base(res.OutputPath)
		update["users"] = res.Users
		update["candidates"] = res.Candidates
		update["skippedUsers"] = res.SkippedUsers
		update["precisionAtN"] = res.PrecisionAtN
	}
	if err := s.runs.UpdateStatus(ctx, jobID, update); err != nil {
		log.Printf("[jobs] error cerrando run %s en Mongo: %v", jobID, err)
	}
}

// redisSink publica el avance del pipeline como estado "processing".
// Lo leen en paralelo el polling HTTP y el WebSocket.
type redisSink struct {
	jobID string
}

func (s *redisSink) Progress(message string, percentage int) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := cache.SetJobStatus(ctx, s.jobID, &models.JobStatus{
		Status:     models.JobStatusProcessing,
		Message:    message,
		Percentage: percentage,
	})
	if err != nil {
		// el progreso nunca debe afectar la corrida
		log.Printf("[jobs] error publicando progreso de %s: %v", s.jobID, err)
	}
}
