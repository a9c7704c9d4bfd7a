package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/geo"
	"facility-registry-api-server/internal/models"
	"facility-registry-api-server/internal/repository"
)

// FacilityService owns GeoLocale records and composes the box/variable
// stores to assemble and tear down a facility's full detail payload.
type FacilityService interface {
	Create(ctx context.Context, req *dto.CreateFacilityRequest) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateFacilityRequest) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.GeoLocale, error)
	GetDetails(ctx context.Context, id primitive.ObjectID) (*dto.FacilityDetails, error)
	List(ctx context.Context, filters dto.ListFilters) ([]models.GeoLocale, error)
	ListWithDetails(ctx context.Context, filters dto.ListFilters) ([]dto.FacilityDetails, error)
	Nearby(ctx context.Context, center models.Coordinates, radiusKm float64, filters dto.ListFilters) ([]dto.NearbyFacility, error)
}

type facilityService struct {
	repo   *repository.Repository
	bounds geo.Bounds
	logger *zap.Logger
}

// NewFacilityService builds the facility store over the given repositories.
// bounds is the deployment's validation rectangle.
func NewFacilityService(repo *repository.Repository, bounds geo.Bounds, logger *zap.Logger) FacilityService {
	return &facilityService{repo: repo, bounds: bounds, logger: logger}
}

// findDuplicateName scans every facility (active and inactive) for a
// case-insensitive name match, excluding excludeID when renaming.
func (s *facilityService) findDuplicateName(ctx context.Context, name string, excludeID primitive.ObjectID) (*models.GeoLocale, error) {
	all, err := s.repo.Facility.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(name)
	for i := range all {
		if all[i].ID == excludeID {
			continue
		}
		if strings.ToLower(all[i].Name) == needle {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (s *facilityService) Create(ctx context.Context, req *dto.CreateFacilityRequest) (primitive.ObjectID, error) {
	if !models.IsValidFacilityType(req.Type) {
		return primitive.NilObjectID, &ValidationError{Field: "type", Message: "must be one of: " + strings.Join(models.FacilityTypes, ", ")}
	}
	region := req.Region
	if region == "" {
		region = "central"
	}
	if !models.IsValidRegion(region) {
		return primitive.NilObjectID, &ValidationError{Field: "region", Message: "must be one of: " + strings.Join(models.Regions, ", ")}
	}
	if err := geo.Validate(req.Coordinates, s.bounds, "Facility coordinates"); err != nil {
		return primitive.NilObjectID, err
	}

	dup, err := s.findDuplicateName(ctx, req.Name, primitive.NilObjectID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if dup != nil {
		return primitive.NilObjectID, &DuplicateNameError{Name: req.Name, ConflictID: dup.ID}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	loc := &models.GeoLocale{
		Name:        req.Name,
		Type:        req.Type,
		Region:      region,
		Coordinates: req.Coordinates,
		Description: req.Description,
		IsActive:    isActive,
	}
	id, err := s.repo.Facility.Insert(ctx, loc)
	if err != nil {
		s.logger.Error("failed to insert facility", zap.String("name", req.Name), zap.Error(err))
		return primitive.NilObjectID, err
	}
	s.logger.Info("facility created", zap.String("id", id.Hex()), zap.String("name", req.Name))
	return id, nil
}

func (s *facilityService) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateFacilityRequest) (primitive.ObjectID, error) {
	loc, err := s.repo.Facility.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrFacilityNotFound
		}
		return primitive.NilObjectID, err
	}

	if req.Coordinates != nil {
		if err := geo.Validate(*req.Coordinates, s.bounds, "Updated coordinates"); err != nil {
			return primitive.NilObjectID, err
		}
		loc.Coordinates = *req.Coordinates
	}
	if req.Name != nil && *req.Name != loc.Name {
		dup, err := s.findDuplicateName(ctx, *req.Name, id)
		if err != nil {
			return primitive.NilObjectID, err
		}
		if dup != nil {
			return primitive.NilObjectID, &DuplicateNameError{Name: *req.Name, ConflictID: dup.ID}
		}
		loc.Name = *req.Name
	}
	if req.Type != nil {
		if !models.IsValidFacilityType(*req.Type) {
			return primitive.NilObjectID, &ValidationError{Field: "type", Message: "must be one of: " + strings.Join(models.FacilityTypes, ", ")}
		}
		loc.Type = *req.Type
	}
	if req.Region != nil {
		if !models.IsValidRegion(*req.Region) {
			return primitive.NilObjectID, &ValidationError{Field: "region", Message: "must be one of: " + strings.Join(models.Regions, ", ")}
		}
		loc.Region = *req.Region
	}
	if req.Description != nil {
		loc.Description = *req.Description
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}

	if err := s.repo.Facility.Update(ctx, loc); err != nil {
		s.logger.Error("failed to update facility", zap.String("id", id.Hex()), zap.Error(err))
		return primitive.NilObjectID, err
	}
	return id, nil
}

// Delete cascades across three ownership levels in child-first order:
// variables, then their box, then the facility. A crash mid-cascade leaves
// only orphaned children behind, never a parent pointing at deleted data.
func (s *facilityService) Delete(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	if _, err := s.repo.Facility.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrFacilityNotFound
		}
		return primitive.NilObjectID, err
	}

	boxes, err := s.repo.Box.ListByFacility(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	for i := range boxes {
		variables, err := s.repo.Variable.ListByBox(ctx, boxes[i].ID)
		if err != nil {
			return primitive.NilObjectID, err
		}
		for j := range variables {
			if err := s.repo.Variable.Delete(ctx, variables[j].ID); err != nil {
				return primitive.NilObjectID, err
			}
		}
		if err := s.repo.Box.Delete(ctx, boxes[i].ID); err != nil {
			return primitive.NilObjectID, err
		}
	}

	if err := s.repo.Facility.Delete(ctx, id); err != nil {
		return primitive.NilObjectID, err
	}
	s.logger.Info("facility deleted", zap.String("id", id.Hex()), zap.Int("boxes", len(boxes)))
	return id, nil
}

func (s *facilityService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.GeoLocale, error) {
	loc, err := s.repo.Facility.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return loc, nil
}

func (s *facilityService) List(ctx context.Context, filters dto.ListFilters) ([]models.GeoLocale, error) {
	all, err := s.repo.Facility.List(ctx)
	if err != nil {
		return nil, err
	}
	return applyFilters(all, filters), nil
}

// applyFilters narrows and sorts a facility slice in memory: type/region
// equality, case-insensitive substring search on name or description, and
// the activeOnly flag (default true). Results are sorted by name ascending.
func applyFilters(all []models.GeoLocale, filters dto.ListFilters) []models.GeoLocale {
	activeOnly := true
	if filters.ActiveOnly != nil {
		activeOnly = *filters.ActiveOnly
	}

	filtered := make([]models.GeoLocale, 0, len(all))
	needle := strings.ToLower(filters.Search)
	for _, loc := range all {
		if activeOnly && !loc.IsActive {
			continue
		}
		if filters.Type != "" && loc.Type != filters.Type {
			continue
		}
		if filters.Region != "" && loc.Region != filters.Region {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(loc.Name), needle) &&
			!strings.Contains(strings.ToLower(loc.Description), needle) {
			continue
		}
		filtered = append(filtered, loc)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Name < filtered[j].Name
	})
	return filtered
}

func (s *facilityService) assembleDetails(ctx context.Context, loc *models.GeoLocale) (*dto.FacilityDetails, error) {
	boxes, err := s.repo.Box.ListByFacility(ctx, loc.ID)
	if err != nil {
		return nil, err
	}

	details := &dto.FacilityDetails{GeoLocale: *loc, Boxes: make([]dto.BoxDetails, 0, len(boxes))}
	for i := range boxes {
		variables, err := s.repo.Variable.ListByBox(ctx, boxes[i].ID)
		if err != nil {
			return nil, err
		}
		details.Boxes = append(details.Boxes, dto.BoxDetails{
			ID:        boxes[i].ID,
			Title:     boxes[i].Title,
			Icon:      boxes[i].Icon,
			Color:     boxes[i].Color,
			SortOrder: boxes[i].SortOrder,
			Variables: AssembleForest(variables),
		})
	}
	return details, nil
}

func (s *facilityService) GetDetails(ctx context.Context, id primitive.ObjectID) (*dto.FacilityDetails, error) {
	loc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assembleDetails(ctx, loc)
}

// ListWithDetails is the most expensive read path:
// O(facilities x boxes x variables). Fine at registry scale; callers
// needing more should narrow the filters instead.
func (s *facilityService) ListWithDetails(ctx context.Context, filters dto.ListFilters) ([]dto.FacilityDetails, error) {
	filtered, err := s.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	results := make([]dto.FacilityDetails, 0, len(filtered))
	for i := range filtered {
		details, err := s.assembleDetails(ctx, &filtered[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *details)
	}
	return results, nil
}

func (s *facilityService) Nearby(ctx context.Context, center models.Coordinates, radiusKm float64, filters dto.ListFilters) ([]dto.NearbyFacility, error) {
	if err := geo.Validate(center, s.bounds, "Search coordinates"); err != nil {
		return nil, err
	}

	facilities, err := s.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	results := make([]dto.NearbyFacility, 0, len(facilities))
	for _, loc := range facilities {
		d := geo.DistanceKm(center, loc.Coordinates)
		if d > radiusKm {
			continue
		}
		rounded := math.Round(d*10) / 10
		results = append(results, dto.NearbyFacility{
			GeoLocale:         loc,
			DistanceKm:        rounded,
			DistanceForHumans: geo.FormatDistance(d),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}
