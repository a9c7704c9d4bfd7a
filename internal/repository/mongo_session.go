package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"facility-registry-api-server/internal/models"
)

type mongoSessionRepo struct {
	coll *mongo.Collection
}

func (r *mongoSessionRepo) Insert(ctx context.Context, s *models.AdminSession) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := result.InsertedID.(primitive.ObjectID)
	s.ID = oid
	return oid, nil
}

func (r *mongoSessionRepo) GetByToken(ctx context.Context, token string) (*models.AdminSession, error) {
	var s models.AdminSession
	err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *mongoSessionRepo) ListByUser(ctx context.Context, userID string) ([]models.AdminSession, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *mongoSessionRepo) List(ctx context.Context) ([]models.AdminSession, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoSessionRepo) find(ctx context.Context, filter bson.M) ([]models.AdminSession, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.AdminSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.AdminSession{}
	}
	return sessions, nil
}

func (r *mongoSessionRepo) UpdateExpiry(ctx context.Context, id primitive.ObjectID, expiresAt time.Time) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"expiresAt": expiresAt}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	// Deleting an unknown token is not an error.
	_, err := r.coll.DeleteOne(ctx, bson.M{"token": token})
	return err
}

func (r *mongoSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
