package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/geo"
	"facility-registry-api-server/internal/models"
	"facility-registry-api-server/internal/repository"
)

// VariableService owns FacilityVariable records and the same-box nesting
// rules between them.
type VariableService interface {
	Create(ctx context.Context, req *dto.CreateVariableRequest) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateVariableRequest) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FacilityVariable, error)
	ListByBox(ctx context.Context, boxID primitive.ObjectID) ([]models.FacilityVariable, error)
	GetByKey(ctx context.Context, key string) ([]models.FacilityVariable, error)
}

type variableService struct {
	repo   *repository.Repository
	bounds geo.Bounds
	logger *zap.Logger
}

// NewVariableService builds the variable store. bounds validates
// coordinates-typed variable values.
func NewVariableService(repo *repository.Repository, bounds geo.Bounds, logger *zap.Logger) VariableService {
	return &variableService{repo: repo, bounds: bounds, logger: logger}
}

// validateValue checks the type enum and its value constraints: nested
// variables never carry a value, other values must be a string or number,
// and coordinates-typed values must parse and fall inside the bounds.
func (s *variableService) validateValue(varType string, value interface{}) error {
	if !models.IsValidVariableType(varType) {
		return &ValidationError{Field: "type", Message: "must be one of: " + strings.Join(models.VariableTypes, ", ")}
	}
	if varType == "nested" {
		if value != nil {
			return &ValidationError{Field: "value", Message: "nested variables cannot have a value"}
		}
		return nil
	}
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case string:
		if varType == "coordinates" {
			coord, err := parseCoordinates(v)
			if err != nil {
				return &ValidationError{Field: "value", Message: err.Error()}
			}
			return geo.Validate(coord, s.bounds, "Variable coordinates")
		}
		return nil
	case float64, int, int64:
		return nil
	default:
		return &ValidationError{Field: "value", Message: "must be a string or a number"}
	}
}

// parseCoordinates reads a "lat, lng" string.
func parseCoordinates(raw string) (models.Coordinates, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return models.Coordinates{}, errors.New("coordinates must be formatted as \"lat, lng\"")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinates{}, errors.New("invalid latitude in coordinates value")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinates{}, errors.New("invalid longitude in coordinates value")
	}
	return models.Coordinates{Lat: lat, Lng: lng}, nil
}

// validateParent resolves the parent, verifies same-box ownership, rejects
// self-reference and walks the ancestor chain to reject multi-hop cycles.
func (s *variableService) validateParent(ctx context.Context, parentID, boxID, selfID primitive.ObjectID) error {
	parent, err := s.repo.Variable.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ValidationError{Field: "parentVariableId", Message: "parent variable not found"}
		}
		return err
	}
	if parent.BoxID != boxID {
		return &ValidationError{Field: "parentVariableId", Message: "parent variable must belong to the same box"}
	}
	if !selfID.IsZero() && parent.ID == selfID {
		return &ValidationError{Field: "parentVariableId", Message: "variable cannot be its own parent"}
	}

	// Walk up the chain; finding selfID among the ancestors would close a
	// cycle (A->B->A). The seen set bounds the walk even on corrupt data.
	seen := map[string]bool{parent.ID.Hex(): true}
	current := parent
	for current.ParentVariableID != nil {
		next := *current.ParentVariableID
		if !selfID.IsZero() && next == selfID {
			return &ValidationError{Field: "parentVariableId", Message: "parent chain would form a cycle"}
		}
		if seen[next.Hex()] {
			break
		}
		seen[next.Hex()] = true
		current, err = s.repo.Variable.GetByID(ctx, next)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				break
			}
			return err
		}
	}
	return nil
}

func (s *variableService) Create(ctx context.Context, req *dto.CreateVariableRequest) (primitive.ObjectID, error) {
	boxID, err := primitive.ObjectIDFromHex(req.BoxID)
	if err != nil {
		return primitive.NilObjectID, &ValidationError{Field: "boxId", Message: "invalid id"}
	}
	if _, err := s.repo.Box.GetByID(ctx, boxID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrBoxNotFound
		}
		return primitive.NilObjectID, err
	}

	if err := s.validateValue(req.Type, req.Value); err != nil {
		return primitive.NilObjectID, err
	}

	v := &models.FacilityVariable{
		BoxID:        boxID,
		Key:          req.Key,
		Label:        req.Label,
		Type:         req.Type,
		Value:        req.Value,
		SortOrder:    req.SortOrder,
		Unit:         req.Unit,
		UnitCategory: req.UnitCategory,
	}
	if req.ParentVariableID != nil {
		parentID, err := primitive.ObjectIDFromHex(*req.ParentVariableID)
		if err != nil {
			return primitive.NilObjectID, &ValidationError{Field: "parentVariableId", Message: "invalid id"}
		}
		if err := s.validateParent(ctx, parentID, boxID, primitive.NilObjectID); err != nil {
			return primitive.NilObjectID, err
		}
		v.ParentVariableID = &parentID
	}

	return s.repo.Variable.Insert(ctx, v)
}

func (s *variableService) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateVariableRequest) (primitive.ObjectID, error) {
	v, err := s.repo.Variable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrVariableNotFound
		}
		return primitive.NilObjectID, err
	}

	if req.BoxID != nil {
		boxID, err := primitive.ObjectIDFromHex(*req.BoxID)
		if err != nil {
			return primitive.NilObjectID, &ValidationError{Field: "boxId", Message: "invalid id"}
		}
		if _, err := s.repo.Box.GetByID(ctx, boxID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return primitive.NilObjectID, ErrBoxNotFound
			}
			return primitive.NilObjectID, err
		}
		v.BoxID = boxID
	}
	if req.Key != nil {
		v.Key = *req.Key
	}
	if req.Label != nil {
		v.Label = *req.Label
	}
	if req.Type != nil {
		v.Type = *req.Type
	}
	if req.Value != nil {
		v.Value = req.Value
	}
	if req.SortOrder != nil {
		v.SortOrder = *req.SortOrder
	}
	if req.Unit != nil {
		v.Unit = *req.Unit
	}
	if req.UnitCategory != nil {
		v.UnitCategory = *req.UnitCategory
	}
	if req.ParentVariableID != nil {
		parentID, err := primitive.ObjectIDFromHex(*req.ParentVariableID)
		if err != nil {
			return primitive.NilObjectID, &ValidationError{Field: "parentVariableId", Message: "invalid id"}
		}
		if err := s.validateParent(ctx, parentID, v.BoxID, id); err != nil {
			return primitive.NilObjectID, err
		}
		v.ParentVariableID = &parentID
	}

	if err := s.validateValue(v.Type, v.Value); err != nil {
		return primitive.NilObjectID, err
	}

	if err := s.repo.Variable.Update(ctx, v); err != nil {
		return primitive.NilObjectID, err
	}
	return id, nil
}

// Delete cascades to descendants at any depth. The walk is iterative over
// an explicit stack so arbitrarily deep forests cannot exhaust the call
// stack; children are deleted before their parents.
func (s *variableService) Delete(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	if _, err := s.repo.Variable.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrVariableNotFound
		}
		return primitive.NilObjectID, err
	}

	// Collect the subtree breadth-first.
	ordered := []primitive.ObjectID{id}
	queue := []primitive.ObjectID{id}
	seen := map[string]bool{id.Hex(): true}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := s.repo.Variable.ListByParent(ctx, current)
		if err != nil {
			return primitive.NilObjectID, err
		}
		for i := range children {
			if seen[children[i].ID.Hex()] {
				continue
			}
			seen[children[i].ID.Hex()] = true
			ordered = append(ordered, children[i].ID)
			queue = append(queue, children[i].ID)
		}
	}

	// Deepest first.
	for i := len(ordered) - 1; i >= 0; i-- {
		if err := s.repo.Variable.Delete(ctx, ordered[i]); err != nil {
			return primitive.NilObjectID, err
		}
	}
	s.logger.Info("variable deleted", zap.String("id", id.Hex()), zap.Int("cascaded", len(ordered)-1))
	return id, nil
}

func (s *variableService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FacilityVariable, error) {
	v, err := s.repo.Variable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVariableNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *variableService) ListByBox(ctx context.Context, boxID primitive.ObjectID) ([]models.FacilityVariable, error) {
	return s.repo.Variable.ListByBox(ctx, boxID)
}

func (s *variableService) GetByKey(ctx context.Context, key string) ([]models.FacilityVariable, error) {
	return s.repo.Variable.ListByKey(ctx, key)
}
