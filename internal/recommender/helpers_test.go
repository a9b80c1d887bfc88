package recommender

import (
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/models"
)

// interacción PAID del segmento train, con timestamp válido
func paidTrain(user, item, city string, t time.Time) models.Interaction {
	return models.Interaction{
		UserID:          user,
		ItemID:          item,
		ReservationTime: t,
		TimeValid:       true,
		SaleStatus:      models.SaleStatusPaid,
		PartDataset:     models.SegmentTrain,
		City:            city,
	}
}

func paidSegment(user, item, city, segment string, t time.Time) models.Interaction {
	it := paidTrain(user, item, city, t)
	it.PartDataset = segment
	return it
}

func event(item, segment, genre, ftype string) models.EventDescription {
	return models.EventDescription{
		ItemID:      item,
		PartDataset: segment,
		FilmGenre:   genre,
		FilmType:    ftype,
	}
}

// lunes 2024-01-01 10:00, base para armar fechas en tests
var monday = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
