package repository

import (
	"context"
	"time"

	"github.com/m-bikko/freedom-hackathon/internal/db"
	"github.com/m-bikko/freedom-hackathon/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RunRepository struct {
	col *mongo.Collection
}

func NewRunRepository() *RunRepository {
	return &RunRepository{col: db.DB().Collection("runs")}
}

func (r *RunRepository) Insert(ctx context.Context, run *models.Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, run)
	return err
}

func (r *RunRepository) FindByID(ctx context.Context, id string) (*models.Run, error) {
	var run models.Run
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &run, err
}

// UpdateStatus cierra una corrida: estado terminal + métricas.
func (r *RunRepository) UpdateStatus(ctx context.Context, id string, update bson.M) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindRecent lista el historial de corridas, más nuevas primero.
func (r *RunRepository) FindRecent(ctx context.Context, limit int64) ([]models.Run, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Run
	for cur.Next(ctx) {
		var run models.Run
		if err := cur.Decode(&run); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, cur.Err()
}
