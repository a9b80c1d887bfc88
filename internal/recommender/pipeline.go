package recommender

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/dataset"
	"github.com/m-bikko/freedom-hackathon/internal/models"
)

// Params son los parámetros de una corrida del pipeline.
type Params struct {
	Strategy string // hybrid | content
	TopN     int    // 0 = default (10 híbrido, 5 contenido)
	Workers  int    // goroutines de scoring, 0 = 4
}

// Result resume una corrida completa.
type Result struct {
	OutputPath   string
	Users        int
	Candidates   int
	SkippedUsers int
	PrecisionAtN float64
	Predictions  map[string][]string
}

const (
	defaultHybridTopN  = 10
	defaultContentTopN = 5
	defaultWorkers     = 4
)

func (p *Params) normalize() {
	if p.Strategy == "" {
		p.Strategy = models.StrategyHybrid
	}
	if p.TopN <= 0 {
		if p.Strategy == models.StrategyContent {
			p.TopN = defaultContentTopN
		} else {
			p.TopN = defaultHybridTopN
		}
	}
	if p.Workers <= 0 {
		p.Workers = defaultWorkers
	}
}

// Run ejecuta el pipeline completo contra dos archivos CSV y escribe el
// resultado en outPath. Es el job submission boundary: carga, delega en
// RunTables y devuelve el resumen o un error fatal.
func Run(ctx context.Context, trainPath, eventsPath, outPath string, p Params, sink ProgressSink) (*Result, error) {
	emit(sink, "Iniciando proceso de recomendación...", 0)

	emit(sink, "Cargando datos...", 5)
	interactions, err := dataset.LoadInteractions(trainPath)
	if err != nil {
		return nil, err
	}
	events, err := dataset.LoadEvents(eventsPath)
	if err != nil {
		return nil, err
	}
	emit(sink, "Datos cargados", 10)

	return RunTables(ctx, interactions, events, outPath, p, sink)
}

// RunTables es la misma corrida pero sobre tablas ya en memoria.
//
// Invariante de cortes: el candidate set de validación (segmento test) se
// puntúa solo con histórico train, y el final (submission) con train+test.
// Mezclar los cortes filtraría información del futuro al scoring.
func RunTables(
	ctx context.Context,
	interactions []models.Interaction,
	events []models.EventDescription,
	outPath string,
	p Params,
	sink ProgressSink,
) (*Result, error) {

	p.normalize()

	// 1) Solo compras pagadas
	paid := FilterPaid(interactions)
	emit(sink, fmt.Sprintf("Filtradas %d interacciones PAID", len(paid)), 15)

	// 2) Candidate sets con sus cortes de histórico
	finalCandidates := CandidateItems(events, models.SegmentSubmission)
	validationCandidates := CandidateItems(events, models.SegmentTest)
	emit(sink, fmt.Sprintf("%d eventos candidatos para el periodo final", len(finalCandidates)), 20)

	trainHistory := FilterSegments(paid, models.SegmentTrain)
	fullHistory := FilterSegments(paid, models.SegmentTrain, models.SegmentTest)

	// ground truth de validación: compras reales del segmento test
	groundTruth := make(map[string][]string)
	for _, it := range FilterSegments(paid, models.SegmentTest) {
		groundTruth[it.UserID] = append(groundTruth[it.UserID], it.ItemID)
	}
	emit(sink, "Histórico particionado", 25)

	// 3) Índices de lookup (congelados antes del scoring)
	idx := BuildIndices(paid, events)
	emit(sink, "Mapeos de usuarios y eventos creados", 35)

	// 4) Usuarios con alguna fila de timestamp roto: se aíslan con lista
	// vacía en vez de tumbar el batch
	badUsers := make(map[string]bool)
	for _, it := range paid {
		if !it.TimeValid {
			badUsers[it.UserID] = true
		}
	}

	// 5) Features derivadas (independientes entre sí, en paralelo)
	emit(sink, "Calculando popularidad y patrones temporales...", 40)

	var finalScorer, validationScorer Strategy
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		finalScorer = buildStrategy(p.Strategy, finalCandidates, fullHistory, idx, events)
	}()
	go func() {
		defer wg.Done()
		validationScorer = buildStrategy(p.Strategy, validationCandidates, trainHistory, idx, events)
	}()
	wg.Wait()

	emit(sink, "Patrones temporales extraídos", 60)

	// 6) Scoring de todos los usuarios (pool de workers, cancelable)
	users := uniqueUsers(paid)

	emit(sink, "Generando recomendaciones...", 65)
	predictions, skipped, err := scoreUsers(ctx, users, finalScorer, p, badUsers, sink)
	if err != nil {
		return nil, err
	}
	emit(sink, "Recomendaciones generadas para todos los usuarios", 95)

	// 7) Evaluación sobre el periodo de validación
	precision, err := evaluate(ctx, validationScorer, groundTruth, p, badUsers)
	if err != nil {
		return nil, err
	}

	// 8) Archivo de salida
	emit(sink, "Creando archivo de resultados...", 97)
	if err := WriteSubmission(outPath, users, predictions); err != nil {
		return nil, err
	}
	emit(sink, "Archivo de resultados creado", 100)

	return &Result{
		OutputPath:   outPath,
		Users:        len(users),
		Candidates:   len(finalCandidates),
		SkippedUsers: skipped,
		PrecisionAtN: precision,
		Predictions:  predictions,
	}, nil
}

func buildStrategy(
	strategy string,
	candidates []string,
	history []models.Interaction,
	idx *Indices,
	events []models.EventDescription,
) Strategy {

	popularity := GlobalPopularity(history, candidates)
	byUser := GroupByUser(history)

	if strategy == models.StrategyContent {
		return NewContentScorer(candidates, idx, popularity, byUser, events)
	}

	userTemporal := ExtractUserTemporal(history)
	dayPatterns, _ := ExtractEventTemporal(history, candidates)

	return &HybridScorer{
		Candidates:       candidates,
		Idx:              idx,
		Popularity:       popularity,
		CityPopularity:   CityPopularity(history, candidates),
		Frequency:        userTemporal.Frequency,
		DayPrefs:         userTemporal.DayPrefs,
		EventDayPatterns: dayPatterns,
		History:          byUser,
	}
}

// uniqueUsers devuelve los usuarios del histórico ordenados: el orden de
// escritura (y el progreso) debe ser reproducible entre corridas.
func uniqueUsers(interactions []models.Interaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range interactions {
		if !seen[it.UserID] {
			seen[it.UserID] = true
			out = append(out, it.UserID)
		}
	}
	sort.Strings(out)
	return out
}

// scoreUsers reparte los usuarios entre workers. Cada usuario es
// independiente (índices de solo lectura), así que no hay locks en el
// camino caliente. Un fallo por usuario (timestamp roto, panic) se registra
// y deja lista vacía: un usuario corrupto no tumba el batch.
func scoreUsers(
	ctx context.Context,
	users []string,
	scorer Strategy,
	p Params,
	badUsers map[string]bool,
	sink ProgressSink,
) (map[string][]string, int, error) {

	total := len(users)
	predictions := make(map[string][]string, total)
	var mu sync.Mutex

	var skipped int64
	var processed int64
	progressStep := total / 20 // ~cada 5%
	if progressStep < 1 {
		progressStep = 1
	}

	jobs := make(chan string)
	var wg sync.WaitGroup

	for w := 0; w < p.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for user := range jobs {
				items := scoreOneUser(user, scorer, p.TopN, badUsers, &skipped)

				mu.Lock()
				predictions[user] = items
				mu.Unlock()

				n := atomic.AddInt64(&processed, 1)
				if n%int64(progressStep) == 0 || n == int64(total) {
					pct := 65 + int(float64(n)/float64(total)*30)
					emit(sink, fmt.Sprintf("Procesando usuario %d/%d", n, total), pct)
				}
			}
		}()
	}

	// alimentamos el pool chequeando cancelación entre usuarios
	var cancelled bool
	for _, user := range users {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case <-ctx.Done():
			cancelled = true
		case jobs <- user:
		}
		if cancelled {
			break
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled {
		return nil, 0, ctx.Err()
	}
	return predictions, int(skipped), nil
}

// scoreOneUser aísla el scoring de un usuario: timestamp corrupto o panic
// del scorer producen lista vacía, nunca abortan la corrida.
func scoreOneUser(user string, scorer Strategy, topN int, badUsers map[string]bool, skipped *int64) (items []string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[pipeline] error puntuando usuario %s: %v", user, r)
			atomic.AddInt64(skipped, 1)
			items = []string{}
		}
	}()

	if badUsers[user] {
		log.Printf("[pipeline] usuario %s con timestamp inválido, se omite", user)
		atomic.AddInt64(skipped, 1)
		return []string{}
	}

	return scorer.Recommend(user, topN)
}

// evaluate calcula precision@N del periodo de validación contra las compras
// reales del segmento test. Una cancelación a mitad de camino aborta con el
// error del contexto: una muestra parcial no se reporta como métrica completa.
func evaluate(ctx context.Context, scorer Strategy, groundTruth map[string][]string, p Params, badUsers map[string]bool) (float64, error) {
	if len(groundTruth) == 0 {
		return 0, nil
	}

	users := make([]string, 0, len(groundTruth))
	for user := range groundTruth {
		users = append(users, user)
	}
	sort.Strings(users)

	var sum float64
	var counted int
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if badUsers[user] {
			continue
		}
		recommended := scorer.Recommend(user, p.TopN)
		if len(recommended) == 0 {
			continue
		}

		truth := make(map[string]bool, len(groundTruth[user]))
		for _, id := range groundTruth[user] {
			truth[id] = true
		}

		hits := 0
		for _, id := range recommended {
			if truth[id] {
				hits++
			}
		}
		sum += float64(hits) / float64(p.TopN)
		counted++
	}

	if counted == 0 {
		return 0, nil
	}
	return sum / float64(counted), nil
}

// RunTimed envuelve Run midiendo la duración total (para el historial).
func RunTimed(ctx context.Context, trainPath, eventsPath, outPath string, p Params, sink ProgressSink) (*Result, time.Duration, error) {
	start := time.Now()
	res, err := Run(ctx, trainPath, eventsPath, outPath, p, sink)
	return res, time.Since(start), err
}
