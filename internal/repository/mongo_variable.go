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

type mongoVariableRepo struct {
	coll *mongo.Collection
}

func (r *mongoVariableRepo) Insert(ctx context.Context, v *models.FacilityVariable) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, v)
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := result.InsertedID.(primitive.ObjectID)
	v.ID = oid
	return oid, nil
}

func (r *mongoVariableRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FacilityVariable, error) {
	var v models.FacilityVariable
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *mongoVariableRepo) ListByBox(ctx context.Context, boxID primitive.ObjectID) ([]models.FacilityVariable, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}})
	return r.find(ctx, bson.M{"boxId": boxID}, opts)
}

func (r *mongoVariableRepo) ListByKey(ctx context.Context, key string) ([]models.FacilityVariable, error) {
	return r.find(ctx, bson.M{"key": key}, nil)
}

func (r *mongoVariableRepo) ListByParent(ctx context.Context, parentID primitive.ObjectID) ([]models.FacilityVariable, error) {
	return r.find(ctx, bson.M{"parentVariableId": parentID}, nil)
}

func (r *mongoVariableRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.FacilityVariable, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vars []models.FacilityVariable
	if err := cursor.All(ctx, &vars); err != nil {
		return nil, err
	}
	if vars == nil {
		vars = []models.FacilityVariable{}
	}
	return vars, nil
}

func (r *mongoVariableRepo) Update(ctx context.Context, v *models.FacilityVariable) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoVariableRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
