package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"facility-registry-api-server/internal/dto"
)

// ReportService is read-only aggregation over the facility store.
type ReportService interface {
	Summary(ctx context.Context, filters dto.ReportFilters) (*dto.SummaryReport, error)
	Detailed(ctx context.Context, filters dto.ReportFilters) (*dto.DetailedReport, error)
	Capacity(ctx context.Context, filters dto.ReportFilters) (*dto.CapacityReport, error)
}

type reportService struct {
	facilities FacilityService
	logger     *zap.Logger
}

// NewReportService builds the report generator over the facility store.
func NewReportService(facilities FacilityService, logger *zap.Logger) ReportService {
	return &reportService{facilities: facilities, logger: logger}
}

func toListFilters(filters dto.ReportFilters) dto.ListFilters {
	// Reports need full visibility unless the caller narrows them.
	activeOnly := false
	if filters.ActiveOnly != nil {
		activeOnly = *filters.ActiveOnly
	}
	return dto.ListFilters{
		Type:       filters.Type,
		Region:     filters.Region,
		ActiveOnly: &activeOnly,
	}
}

func (s *reportService) Summary(ctx context.Context, filters dto.ReportFilters) (*dto.SummaryReport, error) {
	facilities, err := s.facilities.List(ctx, toListFilters(filters))
	if err != nil {
		return nil, err
	}

	report := &dto.SummaryReport{
		ReportType: "summary",
		Generated:  time.Now(),
		Total:      len(facilities),
		ByType:     map[string]int{},
		ByRegion:   map[string]int{},
	}
	for i := range facilities {
		if facilities[i].IsActive {
			report.Active++
		} else {
			report.Inactive++
		}
		report.ByType[facilities[i].Type]++
		report.ByRegion[facilities[i].Region]++
	}
	return report, nil
}

func (s *reportService) Detailed(ctx context.Context, filters dto.ReportFilters) (*dto.DetailedReport, error) {
	facilities, err := s.facilities.ListWithDetails(ctx, toListFilters(filters))
	if err != nil {
		return nil, err
	}

	rows := make([]dto.DetailedReportRow, 0, len(facilities))
	for i := range facilities {
		f := &facilities[i]
		rows = append(rows, dto.DetailedReportRow{
			ID:          f.ID,
			Name:        f.Name,
			Type:        f.Type,
			Region:      f.Region,
			Coordinates: f.Coordinates,
			Description: f.Description,
			IsActive:    f.IsActive,
			BoxCount:    len(f.Boxes),
		})
	}
	return &dto.DetailedReport{
		ReportType: "detailed",
		Generated:  time.Now(),
		Facilities: rows,
		Total:      len(rows),
	}, nil
}

// Capacity is a stub on purpose: it reports the facility count only until
// capacity variables get a parser.
func (s *reportService) Capacity(ctx context.Context, filters dto.ReportFilters) (*dto.CapacityReport, error) {
	facilities, err := s.facilities.List(ctx, toListFilters(filters))
	if err != nil {
		return nil, err
	}
	return &dto.CapacityReport{
		ReportType:         "capacity",
		Generated:          time.Now(),
		Message:            "Capacity analysis - feature to be enhanced with variable parsing",
		FacilitiesAnalyzed: len(facilities),
	}, nil
}
