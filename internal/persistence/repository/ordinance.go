package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JoshVilla/brgy-admin-sub001/internal/domain"
	"github.com/JoshVilla/brgy-admin-sub001/internal/persistence/db"
)

type ordinanceRepository struct {
	db *mongo.Database
}

func NewOrdinanceRepository(database *mongo.Database) domain.OrdinanceRepository {
	return &ordinanceRepository{
		db: database,
	}
}

func (r *ordinanceRepository) Create(ctx context.Context, ordinance *domain.Ordinance) error {
	collection := r.db.Collection(db.OrdinancesCollection)

	_, err := collection.InsertOne(ctx, ordinance)
	return err
}

func (r *ordinanceRepository) GetByID(ctx context.Context, id string) (*domain.Ordinance, error) {
	collection := r.db.Collection(db.OrdinancesCollection)

	var ordinance domain.Ordinance
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ordinance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &ordinance, nil
}

func (r *ordinanceRepository) List(ctx context.Context) ([]domain.Ordinance, error) {
	collection := r.db.Collection(db.OrdinancesCollection)

	opts := options.Find().SetSort(bson.D{{Key: "enacted_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ordinances []domain.Ordinance
	if err := cursor.All(ctx, &ordinances); err != nil {
		return nil, err
	}

	return ordinances, nil
}

func (r *ordinanceRepository) Update(ctx context.Context, ordinance *domain.Ordinance) error {
	collection := r.db.Collection(db.OrdinancesCollection)

	ordinance.UpdatedAt = time.Now().UTC()

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": ordinance.ID}, ordinance)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ordinanceRepository) Delete(ctx context.Context, id string) error {
	collection := r.db.Collection(db.OrdinancesCollection)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}
