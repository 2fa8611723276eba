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

type residentRepository struct {
	db *mongo.Database
}

func NewResidentRepository(database *mongo.Database) domain.ResidentRepository {
	return &residentRepository{
		db: database,
	}
}

func (r *residentRepository) Create(ctx context.Context, resident *domain.Resident) error {
	collection := r.db.Collection(db.ResidentsCollection)

	_, err := collection.InsertOne(ctx, resident)
	return err
}

func (r *residentRepository) GetByID(ctx context.Context, id string) (*domain.Resident, error) {
	collection := r.db.Collection(db.ResidentsCollection)

	var resident domain.Resident
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&resident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &resident, nil
}

func (r *residentRepository) List(ctx context.Context) ([]domain.Resident, error) {
	collection := r.db.Collection(db.ResidentsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var residents []domain.Resident
	if err := cursor.All(ctx, &residents); err != nil {
		return nil, err
	}

	return residents, nil
}

func (r *residentRepository) Update(ctx context.Context, resident *domain.Resident) error {
	collection := r.db.Collection(db.ResidentsCollection)

	resident.UpdatedAt = time.Now().UTC()

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": resident.ID}, resident)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *residentRepository) Delete(ctx context.Context, id string) error {
	collection := r.db.Collection(db.ResidentsCollection)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}
