package dto

// CreateBoxRequest creates a box under a facility.
type CreateBoxRequest struct {
	GeoLocaleID string `json:"geoLocaleId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	SortOrder   int    `json:"sortOrder"`
}

// UpdateBoxRequest is a partial patch on a box.
type UpdateBoxRequest struct {
	GeoLocaleID *string `json:"geoLocaleId"`
	Title       *string `json:"title"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	SortOrder   *int    `json:"sortOrder"`
}
