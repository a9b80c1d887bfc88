package recommender

// ProgressSink recibe avances del pipeline: (mensaje, porcentaje 0-100).
// Es un canal lateral: nunca debe bloquear la corrida y puede no existir.
type ProgressSink interface {
	Progress(message string, percentage int)
}

// NopSink descarta todo (para tests y corridas sin observador).
type NopSink struct{}

func (NopSink) Progress(string, int) {}

// emit es nil-safe: un sink ausente es un no-op.
func emit(sink ProgressSink, msg string, pct int) {
	if sink != nil {
		sink.Progress(msg, pct)
	}
}
