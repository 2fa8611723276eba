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

type incidentRepository struct {
	db *mongo.Database
}

func NewIncidentRepository(database *mongo.Database) domain.IncidentRepository {
	return &incidentRepository{
		db: database,
	}
}

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	collection := r.db.Collection(db.IncidentsCollection)

	_, err := collection.InsertOne(ctx, incident)
	return err
}

func (r *incidentRepository) GetByID(ctx context.Context, id string) (*domain.Incident, error) {
	collection := r.db.Collection(db.IncidentsCollection)

	var incident domain.Incident
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&incident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &incident, nil
}

func (r *incidentRepository) List(ctx context.Context) ([]domain.Incident, error) {
	collection := r.db.Collection(db.IncidentsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "reported_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var incidents []domain.Incident
	if err := cursor.All(ctx, &incidents); err != nil {
		return nil, err
	}

	return incidents, nil
}

func (r *incidentRepository) UpdateStatus(ctx context.Context, id string, status domain.IncidentStatus) (*domain.Incident, error) {
	collection := r.db.Collection(db.IncidentsCollection)

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var incident domain.Incident
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&incident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &incident, nil
}
