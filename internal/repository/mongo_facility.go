package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"facility-registry-api-server/internal/models"
)

type mongoFacilityRepo struct {
	coll *mongo.Collection
}

func (r *mongoFacilityRepo) Insert(ctx context.Context, loc *models.GeoLocale) (primitive.ObjectID, error) {
	now := time.Now()
	loc.CreatedAt = now
	loc.UpdatedAt = now
	loc.NameLower = strings.ToLower(loc.Name)

	result, err := r.coll.InsertOne(ctx, loc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := result.InsertedID.(primitive.ObjectID)
	loc.ID = oid
	return oid, nil
}

func (r *mongoFacilityRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.GeoLocale, error) {
	var loc models.GeoLocale
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&loc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

func (r *mongoFacilityRepo) List(ctx context.Context) ([]models.GeoLocale, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var locs []models.GeoLocale
	if err := cursor.All(ctx, &locs); err != nil {
		return nil, err
	}
	if locs == nil {
		locs = []models.GeoLocale{}
	}
	return locs, nil
}

func (r *mongoFacilityRepo) Update(ctx context.Context, loc *models.GeoLocale) error {
	loc.UpdatedAt = time.Now()
	loc.NameLower = strings.ToLower(loc.Name)

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": loc.ID}, loc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoFacilityRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
