package models

// GPXImport records one loaded GPX file
type GPXImport struct {
	ID         string   `json:"id" db:"id"` // UUID
	SourcePath string   `json:"sourcePath" db:"source_path"`
	FileSize   int64    `json:"fileSize" db:"file_size"`
	TrackCount int      `json:"trackCount" db:"track_count"`
	PointCount int      `json:"pointCount" db:"point_count"`
	MinLat     *float64 `json:"minLat,omitempty" db:"min_lat"`
	MinLon     *float64 `json:"minLon,omitempty" db:"min_lon"`
	MaxLat     *float64 `json:"maxLat,omitempty" db:"max_lat"`
	MaxLon     *float64 `json:"maxLon,omitempty" db:"max_lon"`
	StartTime  *int64   `json:"startTime,omitempty" db:"start_time"` // Unix timestamp
	EndTime    *int64   `json:"endTime,omitempty" db:"end_time"`     // Unix timestamp
	CreatedAt  *string  `json:"createdAt,omitempty" db:"created_at"`
}

// ImportBatch is an import together with its points
type ImportBatch struct {
	Import GPXImport
	Points []TrackPoint
}

// ImportRequest is the body of POST /api/v1/imports
type ImportRequest struct {
	Paths []string `json:"paths" binding:"required,min=1"`
}
