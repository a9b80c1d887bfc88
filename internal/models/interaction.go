package models

import "time"

// Segmentos del dataset (columna part_dataset en ambos CSV).
const (
	SegmentTrain      = "train"
	SegmentTest       = "test"
	SegmentSubmission = "submission_movies"
)

// Estado de venta que nos interesa: solo compras pagadas cuentan como señal.
const SaleStatusPaid = "PAID"

// Interaction es una fila del CSV de transacciones (train_test.csv).
// Se carga una vez y no se muta: las vistas filtradas son slices nuevos.
type Interaction struct {
	UserID          string    `json:"userId"`
	ItemID          string    `json:"itemId"`
	ReservationTime time.Time `json:"reservationTime"`
	// TimeValid marca si reservation_time se pudo parsear. Una fila con
	// timestamp roto no tumba la carga: el usuario dueño de la fila se
	// aísla en el scoring (lista vacía) sin afectar al resto del batch.
	TimeValid   bool   `json:"timeValid"`
	SaleStatus  string `json:"saleStatus"`
	PartDataset string `json:"partDataset"`
	City        string `json:"city"`
	Gender      string `json:"gender"`
	Age         string `json:"age"`
	PlaceName   string `json:"placeName"`
}

// EventDescription es una fila del catálogo de eventos (events_description.csv).
type EventDescription struct {
	ItemID      string `json:"itemId"`
	PartDataset string `json:"partDataset"`
	FilmGenre   string `json:"filmGenre"`
	FilmType    string `json:"filmType"`
}
