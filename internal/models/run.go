package models

import "time"

// Estados posibles de un job de recomendación.
const (
	JobStatusStarting   = "starting"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
	JobStatusError      = "error"
)

// Estrategias de scoring disponibles.
const (
	StrategyHybrid  = "hybrid"
	StrategyContent = "content"
)

// JobStatus es el estado transitorio de una corrida, guardado en Redis
// (reemplaza al diccionario global de estados: el API lo escribe desde el
// worker y lo lee desde el endpoint de polling y el WebSocket).
type JobStatus struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Percentage int    `json:"percentage"`
	ResultFile string `json:"resultFile,omitempty"`
}

// RunParams son los parámetros que sí cambian por corrida.
type RunParams struct {
	Strategy string `json:"strategy" bson:"strategy"`
	TopN     int    `json:"topN" bson:"topN"`
	Workers  int    `json:"workers" bson:"workers"`
}

// Run es el documento persistido en Mongo con el historial de corridas.
type Run struct {
	ID         string    `json:"id" bson:"_id"`
	UserID     int       `json:"userId" bson:"userId"`
	Params     RunParams `json:"params" bson:"params"`
	Status     string    `json:"status" bson:"status"`
	Message    string    `json:"message,omitempty" bson:"message,omitempty"`
	OutputFile string    `json:"outputFile,omitempty" bson:"outputFile,omitempty"`

	// Métricas de la corrida
	Users        int     `json:"users" bson:"users"`
	Candidates   int     `json:"candidates" bson:"candidates"`
	SkippedUsers int     `json:"skippedUsers" bson:"skippedUsers"`
	PrecisionAtN float64 `json:"precisionAtN" bson:"precisionAtN"`
	DurationMs   int64   `json:"durationMs" bson:"durationMs"`

	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty" bson:"finishedAt,omitempty"`
}
