package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"facility-registry-api-server/internal/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// FacilityRepository persists GeoLocale records.
type FacilityRepository interface {
	Insert(ctx context.Context, loc *models.GeoLocale) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.GeoLocale, error)
	// List returns every facility, active and inactive.
	List(ctx context.Context) ([]models.GeoLocale, error)
	Update(ctx context.Context, loc *models.GeoLocale) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BoxRepository persists FacilityBox records.
type BoxRepository interface {
	Insert(ctx context.Context, box *models.FacilityBox) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FacilityBox, error)
	// ListByFacility returns the facility's boxes sorted by sortOrder.
	ListByFacility(ctx context.Context, geoLocaleID primitive.ObjectID) ([]models.FacilityBox, error)
	Update(ctx context.Context, box *models.FacilityBox) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// VariableRepository persists FacilityVariable records.
type VariableRepository interface {
	Insert(ctx context.Context, v *models.FacilityVariable) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FacilityVariable, error)
	// ListByBox returns the box's variables sorted by sortOrder.
	ListByBox(ctx context.Context, boxID primitive.ObjectID) ([]models.FacilityVariable, error)
	ListByKey(ctx context.Context, key string) ([]models.FacilityVariable, error)
	// ListByParent returns the direct children of a variable.
	ListByParent(ctx context.Context, parentID primitive.ObjectID) ([]models.FacilityVariable, error)
	Update(ctx context.Context, v *models.FacilityVariable) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SessionRepository persists AdminSession records.
type SessionRepository interface {
	Insert(ctx context.Context, s *models.AdminSession) (primitive.ObjectID, error)
	GetByToken(ctx context.Context, token string) (*models.AdminSession, error)
	ListByUser(ctx context.Context, userID string) ([]models.AdminSession, error)
	List(ctx context.Context) ([]models.AdminSession, error)
	UpdateExpiry(ctx context.Context, id primitive.ObjectID, expiresAt time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	// DeleteExpired removes every session with expiresAt <= now and
	// returns the number deleted. Safe to run repeatedly.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Repository bundles all storage interfaces for injection into services.
type Repository struct {
	Facility FacilityRepository
	Box      BoxRepository
	Variable VariableRepository
	Session  SessionRepository
}

// NewMongoRepository builds the Repository backed by the given database.
func NewMongoRepository(db *mongo.Database) *Repository {
	return &Repository{
		Facility: &mongoFacilityRepo{coll: db.Collection("geo_locales")},
		Box:      &mongoBoxRepo{coll: db.Collection("facility_boxes")},
		Variable: &mongoVariableRepo{coll: db.Collection("facility_variables")},
		Session:  &mongoSessionRepo{coll: db.Collection("admin_sessions")},
	}
}
