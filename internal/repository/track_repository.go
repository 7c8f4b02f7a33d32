package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/gpx-records/internal/models"
)

const trackPointColumns = `id, import_id, seq, dataTime, latitude, longitude, altitude, fix, time_visually, created_at`

// TrackRepository handles database operations for track points
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new track repository
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// GetTrackPoints retrieves track points with filtering and pagination
func (r *TrackRepository) GetTrackPoints(filter models.TrackPointFilter) ([]models.TrackPoint, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.ImportID != "" {
		conditions = append(conditions, "import_id = ?")
		args = append(args, filter.ImportID)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "dataTime >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "dataTime <= ?")
		args = append(args, filter.EndTime)
	}
	if filter.Fix != "" {
		conditions = append(conditions, "fix = ?")
		args = append(args, filter.Fix)
	}
	if filter.HasBounds() {
		conditions = append(conditions, "latitude BETWEEN ? AND ?", "longitude BETWEEN ? AND ?")
		args = append(args, filter.MinLat, filter.MaxLat, filter.MinLon, filter.MaxLon)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM track_points"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count track points: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := "SELECT " + trackPointColumns + " FROM track_points" + where +
		" ORDER BY dataTime ASC, import_id, seq LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query track points: %w", err)
	}
	defer rows.Close()

	points, err := scanTrackPoints(rows)
	if err != nil {
		return nil, 0, err
	}
	return points, total, nil
}

// GetTrackPointByID retrieves a single track point by ID
func (r *TrackRepository) GetTrackPointByID(id int64) (*models.TrackPoint, error) {
	query := "SELECT " + trackPointColumns + " FROM track_points WHERE id = ?"

	var p models.TrackPoint
	err := r.db.QueryRow(query, id).Scan(
		&p.ID, &p.ImportID, &p.Seq, &p.DataTime, &p.Latitude, &p.Longitude,
		&p.Altitude, &p.Fix, &p.TimeVisually, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track point: %w", err)
	}

	return &p, nil
}

// insertTrackPoints inserts points inside an open transaction
func insertTrackPoints(tx *sql.Tx, points []models.TrackPoint) error {
	stmt, err := tx.Prepare(`INSERT INTO track_points
		(import_id, seq, dataTime, latitude, longitude, altitude, fix, time_visually)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		_, err := stmt.Exec(p.ImportID, p.Seq, p.DataTime, p.Latitude, p.Longitude, p.Altitude, p.Fix, p.TimeVisually)
		if err != nil {
			return fmt.Errorf("failed to insert track point %s/%d: %w", p.ImportID, p.Seq, err)
		}
	}
	return nil
}

func scanTrackPoints(rows *sql.Rows) ([]models.TrackPoint, error) {
	var points []models.TrackPoint
	for rows.Next() {
		var p models.TrackPoint
		err := rows.Scan(
			&p.ID, &p.ImportID, &p.Seq, &p.DataTime, &p.Latitude, &p.Longitude,
			&p.Altitude, &p.Fix, &p.TimeVisually, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate track points: %w", err)
	}
	return points, nil
}
