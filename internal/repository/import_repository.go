package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/gpx-records/internal/database"
	"github.com/jengzang/gpx-records/internal/models"
)

// ImportRepository stores GPX imports and their points
type ImportRepository struct {
	db *sql.DB
}

// NewImportRepository creates a new import repository
func NewImportRepository(db *sql.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

// SaveBatches stores every import and its points in one transaction. Either all
// batches are stored or none are.
func (r *ImportRepository) SaveBatches(batches []models.ImportBatch) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		for _, b := range batches {
			imp := b.Import
			_, err := tx.Exec(`INSERT INTO gpx_imports
				(id, source_path, file_size, track_count, point_count,
				 min_lat, min_lon, max_lat, max_lon, start_time, end_time)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				imp.ID, imp.SourcePath, imp.FileSize, imp.TrackCount, imp.PointCount,
				imp.MinLat, imp.MinLon, imp.MaxLat, imp.MaxLon, imp.StartTime, imp.EndTime,
			)
			if err != nil {
				return fmt.Errorf("failed to insert import %s: %w", imp.ID, err)
			}
			if err := insertTrackPoints(tx, b.Points); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetImport retrieves an import by ID
func (r *ImportRepository) GetImport(id string) (*models.GPXImport, error) {
	var imp models.GPXImport
	err := r.db.QueryRow(`SELECT id, source_path, file_size, track_count, point_count,
		min_lat, min_lon, max_lat, max_lon, start_time, end_time, created_at
		FROM gpx_imports WHERE id = ?`, id).Scan(
		&imp.ID, &imp.SourcePath, &imp.FileSize, &imp.TrackCount, &imp.PointCount,
		&imp.MinLat, &imp.MinLon, &imp.MaxLat, &imp.MaxLon, &imp.StartTime, &imp.EndTime, &imp.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import: %w", err)
	}
	return &imp, nil
}

// ListImports returns the most recent imports first
func (r *ImportRepository) ListImports(limit int) ([]models.GPXImport, error) {
	rows, err := r.db.Query(`SELECT id, source_path, file_size, track_count, point_count,
		min_lat, min_lon, max_lat, max_lon, start_time, end_time, created_at
		FROM gpx_imports ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	var imports []models.GPXImport
	for rows.Next() {
		var imp models.GPXImport
		err := rows.Scan(
			&imp.ID, &imp.SourcePath, &imp.FileSize, &imp.TrackCount, &imp.PointCount,
			&imp.MinLat, &imp.MinLon, &imp.MaxLat, &imp.MaxLon, &imp.StartTime, &imp.EndTime, &imp.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate imports: %w", err)
	}
	return imports, nil
}
