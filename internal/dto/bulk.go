package dto

// BulkImportRow is one candidate facility in a bulk import batch.
type BulkImportRow struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Description string  `json:"description"`
	Region      string  `json:"region"`
}

// BulkImportRequest carries the ordered batch and the dry-run flag.
type BulkImportRequest struct {
	Facilities []BulkImportRow `json:"facilities" binding:"required"`
	DryRun     bool            `json:"dryRun"`
}

// BulkRowSuccess records a committed (or would-be-committed) row.
// ID is empty in dry-run mode; Status then reads "would be created".
type BulkRowSuccess struct {
	Row    int    `json:"row"`
	Name   string `json:"name"`
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
}

// BulkRowFailure records a row rejected by validation or a commit error.
type BulkRowFailure struct {
	Row   int    `json:"row"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// BulkRowSkipped records a row skipped as a duplicate. Skips are a
// distinct outcome from failures.
type BulkRowSkipped struct {
	Row    int    `json:"row"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BulkImportSummary counts the three-way partition.
type BulkImportSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// BulkImportResult echoes the dry-run flag so callers cannot mistake a
// simulation for a commit.
type BulkImportResult struct {
	DryRun     bool              `json:"dryRun"`
	Summary    BulkImportSummary `json:"summary"`
	Successful []BulkRowSuccess  `json:"successful"`
	Failed     []BulkRowFailure  `json:"failed"`
	Skipped    []BulkRowSkipped  `json:"skipped"`
}
