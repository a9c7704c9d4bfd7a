package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"facility-registry-api-server/internal/models"
)

// ReportFilters narrows report aggregation.
type ReportFilters struct {
	Type       string `form:"type"`
	Region     string `form:"region"`
	ActiveOnly *bool  `form:"activeOnly"`
}

// SummaryReport counts facilities overall and grouped by type and region.
type SummaryReport struct {
	ReportType string         `json:"reportType"`
	Generated  time.Time      `json:"generated"`
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	Inactive   int            `json:"inactive"`
	ByType     map[string]int `json:"byType"`
	ByRegion   map[string]int `json:"byRegion"`
}

// DetailedReportRow is one flattened facility row; variables are not
// expanded, only the box count is reported.
type DetailedReportRow struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Region      string             `json:"region"`
	Coordinates models.Coordinates `json:"coordinates"`
	Description string             `json:"description"`
	IsActive    bool               `json:"isActive"`
	BoxCount    int                `json:"boxCount"`
}

// DetailedReport lists every matching facility.
type DetailedReport struct {
	ReportType string              `json:"reportType"`
	Generated  time.Time           `json:"generated"`
	Facilities []DetailedReportRow `json:"facilities"`
	Total      int                 `json:"total"`
}

// CapacityReport is a stub: it reports the facility count only until
// capacity variables get a parser.
type CapacityReport struct {
	ReportType         string    `json:"reportType"`
	Generated          time.Time `json:"generated"`
	Message            string    `json:"message"`
	FacilitiesAnalyzed int       `json:"facilitiesAnalyzed"`
}
