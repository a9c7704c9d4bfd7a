package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the query paths rely on. Safe to
// run on every startup; existing indexes are no-ops.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("geo_locales").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "nameLower", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "region", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("facility_boxes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "geoLocaleId", Value: 1}, {Key: "sortOrder", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("facility_variables").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "boxId", Value: 1}, {Key: "sortOrder", Value: 1}}},
		{Keys: bson.D{{Key: "key", Value: 1}}},
		{Keys: bson.D{{Key: "parentVariableId", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("admin_sessions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}},
	})
	return err
}
