package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"facility-registry-api-server/internal/models"
)

type mongoBoxRepo struct {
	coll *mongo.Collection
}

func (r *mongoBoxRepo) Insert(ctx context.Context, box *models.FacilityBox) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, box)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := result.InsertedID.(primitive.ObjectID)
	box.ID = oid
	return oid, nil
}

func (r *mongoBoxRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FacilityBox, error) {
	var box models.FacilityBox
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&box)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &box, nil
}

func (r *mongoBoxRepo) ListByFacility(ctx context.Context, geoLocaleID primitive.ObjectID) ([]models.FacilityBox, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"geoLocaleId": geoLocaleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var boxes []models.FacilityBox
	if err := cursor.All(ctx, &boxes); err != nil {
		return nil, err
	}
	if boxes == nil {
		boxes = []models.FacilityBox{}
	}
	return boxes, nil
}

func (r *mongoBoxRepo) Update(ctx context.Context, box *models.FacilityBox) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": box.ID}, box)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBoxRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
