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

type announcementRepository struct {
	db *mongo.Database
}

func NewAnnouncementRepository(database *mongo.Database) domain.AnnouncementRepository {
	return &announcementRepository{
		db: database,
	}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	collection := r.db.Collection(db.AnnouncementsCollection)

	_, err := collection.InsertOne(ctx, announcement)
	return err
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	collection := r.db.Collection(db.AnnouncementsCollection)

	var announcement domain.Announcement
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&announcement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &announcement, nil
}

func (r *announcementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	collection := r.db.Collection(db.AnnouncementsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var announcements []domain.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *announcementRepository) Update(ctx context.Context, announcement *domain.Announcement) error {
	collection := r.db.Collection(db.AnnouncementsCollection)

	announcement.UpdatedAt = time.Now().UTC()

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": announcement.ID}, announcement)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	collection := r.db.Collection(db.AnnouncementsCollection)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}
