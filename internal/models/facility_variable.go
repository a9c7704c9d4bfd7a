package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Variable types accepted inside a box.
var VariableTypes = []string{"text", "email", "number", "coordinates", "nested"}

// IsValidVariableType reports whether t is one of the accepted variable types.
func IsValidVariableType(t string) bool {
	for _, v := range VariableTypes {
		if v == t {
			return true
		}
	}
	return false
}

// FacilityVariable is a single labeled attribute inside a box. A variable
// may nest under another variable in the same box via ParentVariableID;
// "nested"-typed variables group children and carry no value of their own.
type FacilityVariable struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	BoxID            primitive.ObjectID  `bson:"boxId" json:"boxId"`
	Key              string              `bson:"key" json:"key"`
	Label            string              `bson:"label" json:"label"`
	Type             string              `bson:"type" json:"type"`
	Value            interface{}         `bson:"value,omitempty" json:"value,omitempty"` // string or number, absent for nested
	SortOrder        int                 `bson:"sortOrder" json:"sortOrder"`
	Unit             string              `bson:"unit,omitempty" json:"unit,omitempty"`
	UnitCategory     string              `bson:"unitCategory,omitempty" json:"unitCategory,omitempty"`
	ParentVariableID *primitive.ObjectID `bson:"parentVariableId,omitempty" json:"parentVariableId,omitempty"`
}

// VariableNode is a FacilityVariable materialized into the per-box forest
// returned by read paths. SubVariables holds the children in sortOrder.
type VariableNode struct {
	FacilityVariable `bson:",inline"`
	SubVariables     []*VariableNode `json:"subVariables"`
}
