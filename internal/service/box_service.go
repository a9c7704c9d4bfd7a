package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/models"
	"facility-registry-api-server/internal/repository"
)

// BoxService owns FacilityBox records. A box belongs to exactly one
// facility and is destroyed when it is.
type BoxService interface {
	Create(ctx context.Context, req *dto.CreateBoxRequest) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateBoxRequest) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FacilityBox, error)
	ListByFacility(ctx context.Context, geoLocaleID primitive.ObjectID) ([]models.FacilityBox, error)
}

type boxService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBoxService builds the box store over the given repositories.
func NewBoxService(repo *repository.Repository, logger *zap.Logger) BoxService {
	return &boxService{repo: repo, logger: logger}
}

func (s *boxService) Create(ctx context.Context, req *dto.CreateBoxRequest) (primitive.ObjectID, error) {
	geoLocaleID, err := primitive.ObjectIDFromHex(req.GeoLocaleID)
	if err != nil {
		return primitive.NilObjectID, &ValidationError{Field: "geoLocaleId", Message: "invalid id"}
	}
	if _, err := s.repo.Facility.GetByID(ctx, geoLocaleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrFacilityNotFound
		}
		return primitive.NilObjectID, err
	}

	box := &models.FacilityBox{
		GeoLocaleID: geoLocaleID,
		Title:       req.Title,
		Icon:        req.Icon,
		Color:       req.Color,
		SortOrder:   req.SortOrder,
	}
	return s.repo.Box.Insert(ctx, box)
}

func (s *boxService) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateBoxRequest) (primitive.ObjectID, error) {
	box, err := s.repo.Box.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrBoxNotFound
		}
		return primitive.NilObjectID, err
	}

	if req.GeoLocaleID != nil {
		geoLocaleID, err := primitive.ObjectIDFromHex(*req.GeoLocaleID)
		if err != nil {
			return primitive.NilObjectID, &ValidationError{Field: "geoLocaleId", Message: "invalid id"}
		}
		if _, err := s.repo.Facility.GetByID(ctx, geoLocaleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return primitive.NilObjectID, ErrFacilityNotFound
			}
			return primitive.NilObjectID, err
		}
		box.GeoLocaleID = geoLocaleID
	}
	if req.Title != nil {
		box.Title = *req.Title
	}
	if req.Icon != nil {
		box.Icon = *req.Icon
	}
	if req.Color != nil {
		box.Color = *req.Color
	}
	if req.SortOrder != nil {
		box.SortOrder = *req.SortOrder
	}

	if err := s.repo.Box.Update(ctx, box); err != nil {
		return primitive.NilObjectID, err
	}
	return id, nil
}

// Delete removes the box's variables first, then the box itself.
func (s *boxService) Delete(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	if _, err := s.repo.Box.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrBoxNotFound
		}
		return primitive.NilObjectID, err
	}

	variables, err := s.repo.Variable.ListByBox(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	for i := range variables {
		if err := s.repo.Variable.Delete(ctx, variables[i].ID); err != nil {
			return primitive.NilObjectID, err
		}
	}

	if err := s.repo.Box.Delete(ctx, id); err != nil {
		return primitive.NilObjectID, err
	}
	s.logger.Info("box deleted", zap.String("id", id.Hex()), zap.Int("variables", len(variables)))
	return id, nil
}

func (s *boxService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FacilityBox, error) {
	box, err := s.repo.Box.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, err
	}
	return box, nil
}

func (s *boxService) ListByFacility(ctx context.Context, geoLocaleID primitive.ObjectID) ([]models.FacilityBox, error) {
	return s.repo.Box.ListByFacility(ctx, geoLocaleID)
}
