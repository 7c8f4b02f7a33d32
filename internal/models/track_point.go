package models

// TrackPoint is a stored GPX trackpoint
type TrackPoint struct {
	ID           int64   `json:"id" db:"id"`
	ImportID     string  `json:"importId" db:"import_id"`
	Seq          int     `json:"seq" db:"seq"`           // position within the import, document order
	DataTime     int64   `json:"dataTime" db:"dataTime"` // Unix timestamp in seconds
	Latitude     float64 `json:"latitude" db:"latitude"`
	Longitude    float64 `json:"longitude" db:"longitude"`
	Altitude     float64 `json:"altitude" db:"altitude"`
	Fix          string  `json:"fix" db:"fix"`                    // 3d, dgps, unknown
	TimeVisually string  `json:"timeVisually" db:"time_visually"` // Format: 2025/01/22 21:42:18.000

	CreatedAt *string `json:"createdAt,omitempty" db:"created_at"`
}

// TimeVisuallyLayout formats TrackPoint.TimeVisually
const TimeVisuallyLayout = "2006/01/02 15:04:05.000"

// TrackPointsResponse represents a paginated response of track points
type TrackPointsResponse struct {
	Data       []TrackPoint `json:"data"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

// TrackPointFilter represents filter parameters for querying track points
type TrackPointFilter struct {
	ImportID  string  `form:"importId"`
	StartTime int64   `form:"startTime"` // Unix timestamp
	EndTime   int64   `form:"endTime"`   // Unix timestamp
	Fix       string  `form:"fix"`
	MinLat    float64 `form:"minLat"`
	MaxLat    float64 `form:"maxLat"`
	MinLon    float64 `form:"minLon"`
	MaxLon    float64 `form:"maxLon"`
	Page      int     `form:"page"`
	PageSize  int     `form:"pageSize"`
}

// HasBounds reports whether all four bounding box parameters are set
func (f TrackPointFilter) HasBounds() bool {
	return f.MinLat != 0 && f.MaxLat != 0 && f.MinLon != 0 && f.MaxLon != 0
}
