package dto

// CreateVariableRequest creates a variable inside a box. Value must be a
// string or a number and must be absent for nested-typed variables.
type CreateVariableRequest struct {
	BoxID            string      `json:"boxId" binding:"required"`
	Key              string      `json:"key" binding:"required"`
	Label            string      `json:"label" binding:"required"`
	Type             string      `json:"type" binding:"required"`
	Value            interface{} `json:"value"`
	SortOrder        int         `json:"sortOrder"`
	Unit             string      `json:"unit"`
	UnitCategory     string      `json:"unitCategory"`
	ParentVariableID *string     `json:"parentVariableId"`
}

// UpdateVariableRequest is a partial patch on a variable.
type UpdateVariableRequest struct {
	BoxID            *string     `json:"boxId"`
	Key              *string     `json:"key"`
	Label            *string     `json:"label"`
	Type             *string     `json:"type"`
	Value            interface{} `json:"value"`
	SortOrder        *int        `json:"sortOrder"`
	Unit             *string     `json:"unit"`
	UnitCategory     *string     `json:"unitCategory"`
	ParentVariableID *string     `json:"parentVariableId"`
}
