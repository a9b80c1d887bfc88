package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/config"
	"github.com/m-bikko/freedom-hackathon/internal/recommender"
)

const trainCSV = `user_id,item_id,reservation_time,sale_status,part_dataset,city,gender_main,age,place_name
u1,e1,2024-01-01 19:30:00,PAID,train,Almaty,F,25,Cinema Park
u1,e2,2024-01-08 19:30:00,PAID,train,Almaty,F,25,Cinema Park
`

const eventsCSV = `item_id,part_dataset,film_genre,film_type
e1,train,Action,2D
e2,train,Comedy,2D
e3,submission_movies,Action,2D
`

// El job service corre sin Redis ni Mongo: los helpers de cache son no-op
// con cliente nil y el repo de runs puede ser nil.
func TestJobServiceRunsQueuedJob(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		UploadDir:    filepath.Join(dir, "uploads"),
		ResultDir:    filepath.Join(dir, "results"),
		JobWorkers:   1,
		ScoreWorkers: 2,
	}
	if err := os.MkdirAll(cfg.ResultDir, 0o755); err != nil {
		t.Fatal(err)
	}

	trainPath := filepath.Join(dir, "train.csv")
	eventsPath := filepath.Join(dir, "events.csv")
	if err := os.WriteFile(trainPath, []byte(trainCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(eventsPath, []byte(eventsCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewJobService(cfg, nil)
	jobID := svc.NewJobID()

	err := svc.Submit(context.Background(), jobID, 1, trainPath, eventsPath, recommender.Params{})
	if err != nil {
		t.Fatalf("Submit falló: %v", err)
	}

	// esperamos a que el worker escriba el resultado
	outPath := svc.ResultPath(jobID)
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(outPath); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("el worker no produjo el archivo de salida a tiempo")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestJobServiceCancelUnknownJob(t *testing.T) {
	cfg := &config.Config{JobWorkers: 1}
	svc := NewJobService(cfg, nil)

	if svc.Cancel("no-existe") {
		t.Error("cancelar un job desconocido debe devolver false")
	}
}
