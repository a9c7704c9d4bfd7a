package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminSession is a time-boxed bearer credential granting mutation rights.
// Expiry is a computed predicate, not a stored state: a session is invalid
// once now >= ExpiresAt even if it has not been swept yet.
type AdminSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string             `bson:"token" json:"-"` // never serialized in responses
	UserID    string             `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
}

// Expired reports whether the session has passed its deadline at now.
func (s *AdminSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
