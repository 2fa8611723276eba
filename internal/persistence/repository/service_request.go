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

type serviceRequestRepository struct {
	db *mongo.Database
}

func NewServiceRequestRepository(database *mongo.Database) domain.ServiceRequestRepository {
	return &serviceRequestRepository{
		db: database,
	}
}

func (r *serviceRequestRepository) Create(ctx context.Context, request *domain.ServiceRequest) error {
	collection := r.db.Collection(db.RequestsCollection)

	_, err := collection.InsertOne(ctx, request)
	return err
}

func (r *serviceRequestRepository) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	collection := r.db.Collection(db.RequestsCollection)

	var request domain.ServiceRequest
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &request, nil
}

func (r *serviceRequestRepository) List(ctx context.Context) ([]domain.ServiceRequest, error) {
	return r.find(ctx, bson.M{})
}

func (r *serviceRequestRepository) ListByResident(ctx context.Context, residentID string) ([]domain.ServiceRequest, error) {
	return r.find(ctx, bson.M{"resident_id": residentID})
}

func (r *serviceRequestRepository) find(ctx context.Context, filter bson.M) ([]domain.ServiceRequest, error) {
	collection := r.db.Collection(db.RequestsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []domain.ServiceRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *serviceRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ServiceRequest, error) {
	collection := r.db.Collection(db.RequestsCollection)

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var request domain.ServiceRequest
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &request, nil
}

func (r *serviceRequestRepository) Delete(ctx context.Context, id string) error {
	collection := r.db.Collection(db.RequestsCollection)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *serviceRequestRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.RequestsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "resident_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
