package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/geo"
	"facility-registry-api-server/internal/models"
	"facility-registry-api-server/internal/repository"
)

// BulkService reconciles a batch of candidate facility rows against the
// registry, partitioning them into successful, failed and skipped.
type BulkService interface {
	Import(ctx context.Context, req *dto.BulkImportRequest) (*dto.BulkImportResult, error)
}

type bulkService struct {
	facilities FacilityService
	repo       *repository.Repository
	bounds     geo.Bounds
	logger     *zap.Logger
}

// NewBulkService builds the reconciler on top of the facility store.
func NewBulkService(facilities FacilityService, repo *repository.Repository, bounds geo.Bounds, logger *zap.Logger) BulkService {
	return &bulkService{facilities: facilities, repo: repo, bounds: bounds, logger: logger}
}

// Import processes rows strictly in input order (row numbers are 1-based).
// Rows are independent units of work: a failed row never aborts the batch,
// and re-running a partially completed batch skips already-created rows
// via the duplicate check.
func (s *bulkService) Import(ctx context.Context, req *dto.BulkImportRequest) (*dto.BulkImportResult, error) {
	// Seed the duplicate index from every existing facility, active and
	// inactive, then grow it as rows are accepted so duplicates within the
	// batch are caught too.
	existing, err := s.repo.Facility.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(existing))
	for i := range existing {
		names[strings.ToLower(existing[i].Name)] = true
	}

	result := &dto.BulkImportResult{
		DryRun:     req.DryRun,
		Successful: []dto.BulkRowSuccess{},
		Failed:     []dto.BulkRowFailure{},
		Skipped:    []dto.BulkRowSkipped{},
	}

	for i, row := range req.Facilities {
		rowNumber := i + 1

		if row.Lat < s.bounds.Lat.Min || row.Lat > s.bounds.Lat.Max {
			result.Failed = append(result.Failed, dto.BulkRowFailure{
				Row:  rowNumber,
				Name: row.Name,
				Error: fmt.Sprintf("Latitude %v outside configured bounds (%v to %v)",
					row.Lat, s.bounds.Lat.Min, s.bounds.Lat.Max),
			})
			continue
		}
		if row.Lng < s.bounds.Lng.Min || row.Lng > s.bounds.Lng.Max {
			result.Failed = append(result.Failed, dto.BulkRowFailure{
				Row:  rowNumber,
				Name: row.Name,
				Error: fmt.Sprintf("Longitude %v outside configured bounds (%v to %v)",
					row.Lng, s.bounds.Lng.Min, s.bounds.Lng.Max),
			})
			continue
		}

		if names[strings.ToLower(row.Name)] {
			result.Skipped = append(result.Skipped, dto.BulkRowSkipped{
				Row:    rowNumber,
				Name:   row.Name,
				Reason: "Facility with this name already exists",
			})
			continue
		}

		if req.DryRun {
			result.Successful = append(result.Successful, dto.BulkRowSuccess{
				Row:    rowNumber,
				Name:   row.Name,
				Status: "would be created",
			})
			names[strings.ToLower(row.Name)] = true
			continue
		}

		id, err := s.facilities.Create(ctx, &dto.CreateFacilityRequest{
			Name:        row.Name,
			Type:        row.Type,
			Region:      row.Region,
			Coordinates: models.Coordinates{Lat: row.Lat, Lng: row.Lng},
			Description: row.Description,
		})
		if err != nil {
			// Commit errors are downgraded to a per-row failure so the
			// rest of the batch keeps going.
			s.logger.Warn("bulk import row failed",
				zap.Int("row", rowNumber), zap.String("name", row.Name), zap.Error(err))
			result.Failed = append(result.Failed, dto.BulkRowFailure{
				Row:   rowNumber,
				Name:  row.Name,
				Error: err.Error(),
			})
			continue
		}

		result.Successful = append(result.Successful, dto.BulkRowSuccess{
			Row:  rowNumber,
			Name: row.Name,
			ID:   id.Hex(),
		})
		names[strings.ToLower(row.Name)] = true
	}

	result.Summary = dto.BulkImportSummary{
		Total:      len(req.Facilities),
		Successful: len(result.Successful),
		Failed:     len(result.Failed),
		Skipped:    len(result.Skipped),
	}
	s.logger.Info("bulk import completed",
		zap.Bool("dryRun", req.DryRun),
		zap.Int("successful", result.Summary.Successful),
		zap.Int("failed", result.Summary.Failed),
		zap.Int("skipped", result.Summary.Skipped))
	return result, nil
}
