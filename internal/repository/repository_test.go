package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jengzang/gpx-records/internal/database"
	"github.com/jengzang/gpx-records/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "tracks.db")})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func batch(id string, times ...int64) models.ImportBatch {
	b := models.ImportBatch{Import: models.GPXImport{
		ID:         id,
		SourcePath: id + ".gpx",
		FileSize:   100,
		TrackCount: 1,
		PointCount: len(times),
	}}
	for i, ts := range times {
		fix := "unknown"
		if i%2 == 1 {
			fix = "3d"
		}
		b.Points = append(b.Points, models.TrackPoint{
			ImportID:     id,
			Seq:          i,
			DataTime:     ts,
			Latitude:     45 + float64(i)/10,
			Longitude:    7 + float64(i)/10,
			Fix:          fix,
			TimeVisually: "2023/05/01 10:15:30.000",
		})
	}
	return b
}

func TestSaveBatchesAndQuery(t *testing.T) {
	conn := openTestDB(t)
	imports := NewImportRepository(conn)
	tracks := NewTrackRepository(conn)

	if err := imports.SaveBatches([]models.ImportBatch{
		batch("a", 100, 200, 300),
		batch("b", 150, 250),
	}); err != nil {
		t.Fatalf("SaveBatches: %v", err)
	}

	points, total, err := tracks.GetTrackPoints(models.TrackPointFilter{})
	if err != nil {
		t.Fatalf("GetTrackPoints: %v", err)
	}
	if total != 5 || len(points) != 5 {
		t.Fatalf("total = %d, len = %d, want 5", total, len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].DataTime < points[i-1].DataTime {
			t.Fatalf("points not ordered by time: %+v", points)
		}
	}

	points, total, err = tracks.GetTrackPoints(models.TrackPointFilter{ImportID: "a", Fix: "3d"})
	if err != nil {
		t.Fatalf("GetTrackPoints: %v", err)
	}
	if total != 1 || points[0].Seq != 1 {
		t.Fatalf("filtered = %+v (total %d)", points, total)
	}

	points, total, err = tracks.GetTrackPoints(models.TrackPointFilter{StartTime: 200, Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("GetTrackPoints: %v", err)
	}
	if total != 3 || len(points) != 1 || points[0].DataTime != 200 {
		t.Fatalf("paged = %+v (total %d)", points, total)
	}

	got, err := tracks.GetTrackPointByID(points[0].ID)
	if err != nil || got == nil {
		t.Fatalf("GetTrackPointByID: %v, %v", got, err)
	}
	if got.ImportID != "a" || got.Seq != 1 {
		t.Fatalf("GetTrackPointByID = %+v", got)
	}

	missing, err := tracks.GetTrackPointByID(9999)
	if err != nil || missing != nil {
		t.Fatalf("GetTrackPointByID(missing) = %v, %v", missing, err)
	}

	imp, err := imports.GetImport("b")
	if err != nil || imp == nil {
		t.Fatalf("GetImport: %v, %v", imp, err)
	}
	if imp.PointCount != 2 || imp.CreatedAt == nil {
		t.Fatalf("GetImport = %+v", imp)
	}

	list, err := imports.ListImports(10)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListImports = %v, %v", list, err)
	}
}

func TestSaveBatchesIsAllOrNothing(t *testing.T) {
	conn := openTestDB(t)
	imports := NewImportRepository(conn)
	tracks := NewTrackRepository(conn)

	dup := batch("dup", 1, 2)
	dup.Points[1].Seq = 0 // violates UNIQUE(import_id, seq)

	if err := imports.SaveBatches([]models.ImportBatch{batch("ok", 1), dup}); err == nil {
		t.Fatalf("SaveBatches succeeded with duplicate points")
	}

	_, total, err := tracks.GetTrackPoints(models.TrackPointFilter{})
	if err != nil {
		t.Fatalf("GetTrackPoints: %v", err)
	}
	if total != 0 {
		t.Fatalf("%d points stored after failed batch", total)
	}
	if imp, _ := imports.GetImport("ok"); imp != nil {
		t.Fatalf("import stored after failed batch")
	}
}
