package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jengzang/gpx-records/internal/gpx"
	"github.com/jengzang/gpx-records/internal/models"
	"github.com/jengzang/gpx-records/internal/repository"
)

// LoadedFile is a successfully loaded GPX file
type LoadedFile struct {
	Path       string
	Size       int64
	Collection *gpx.Collection
}

// ImportService loads GPX files and stores their trackpoints
type ImportService struct {
	importRepo  *repository.ImportRepository
	logger      *slog.Logger
	loadOpts    []gpx.Option
	concurrency int
}

// NewImportService creates a new import service. Files of one batch are loaded
// with at most concurrency loads in flight.
func NewImportService(importRepo *repository.ImportRepository, logger *slog.Logger, concurrency int, opts ...gpx.Option) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &ImportService{
		importRepo:  importRepo,
		logger:      logger,
		loadOpts:    opts,
		concurrency: concurrency,
	}
}

// LoadFile loads a single GPX file. Progress is logged with the file path.
func (s *ImportService) LoadFile(path string) (*LoadedFile, error) {
	opts := append([]gpx.Option{gpx.WithLogger(s.logger.With("file", path))}, s.loadOpts...)
	c, err := gpx.Load(path, opts...)
	if err != nil {
		return nil, err
	}
	return &LoadedFile{Path: path, Size: c.SourceSize(), Collection: c}, nil
}

// LoadFiles loads independent files in parallel. The first failure cancels the
// remaining loads and nothing is returned.
func (s *ImportService) LoadFiles(ctx context.Context, paths []string) ([]*LoadedFile, error) {
	files := make([]*LoadedFile, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := s.LoadFile(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// ImportFiles loads every file and stores them as one all-or-nothing batch.
func (s *ImportService) ImportFiles(ctx context.Context, paths []string) ([]models.GPXImport, error) {
	files, err := s.LoadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	batches := make([]models.ImportBatch, len(files))
	imports := make([]models.GPXImport, len(files))
	for i, f := range files {
		batches[i] = NewImportBatch(uuid.NewString(), f)
		imports[i] = batches[i].Import
	}

	if err := s.importRepo.SaveBatches(batches); err != nil {
		return nil, fmt.Errorf("failed to store imports: %w", err)
	}

	for _, imp := range imports {
		s.logger.Info("imported gpx file", "id", imp.ID, "file", imp.SourcePath, "tracks", imp.TrackCount, "points", imp.PointCount)
	}
	return imports, nil
}

// GetImport retrieves an import by ID
func (s *ImportService) GetImport(id string) (*models.GPXImport, error) {
	imp, err := s.importRepo.GetImport(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get import: %w", err)
	}
	if imp == nil {
		return nil, fmt.Errorf("import %s: %w", id, ErrNotFound)
	}
	return imp, nil
}

// ListImports returns recent imports
func (s *ImportService) ListImports(limit int) ([]models.GPXImport, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	imports, err := s.importRepo.ListImports(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	if imports == nil {
		imports = []models.GPXImport{}
	}
	return imports, nil
}

// NewImportBatch converts a loaded file into storage rows
func NewImportBatch(id string, f *LoadedFile) models.ImportBatch {
	c := f.Collection
	imp := models.GPXImport{
		ID:         id,
		SourcePath: f.Path,
		FileSize:   f.Size,
		TrackCount: c.Tracks(),
		PointCount: c.Len(),
	}

	if c.Len() > 0 {
		rect := c.Bounds()
		minLat, minLon := rect.Lo().Lat.Degrees(), rect.Lo().Lng.Degrees()
		maxLat, maxLon := rect.Hi().Lat.Degrees(), rect.Hi().Lng.Degrees()
		start, end := c.TimeSpan()
		startUnix, endUnix := start.Unix(), end.Unix()
		imp.MinLat, imp.MinLon, imp.MaxLat, imp.MaxLon = &minLat, &minLon, &maxLat, &maxLon
		imp.StartTime, imp.EndTime = &startUnix, &endUnix
	}

	points := make([]models.TrackPoint, 0, c.Len())
	c.Each(func(i int, p gpx.Trackpoint) bool {
		points = append(points, models.TrackPoint{
			ImportID:     id,
			Seq:          i,
			DataTime:     p.Time().Unix(),
			Latitude:     p.Latitude(),
			Longitude:    p.Longitude(),
			Altitude:     p.Elevation(),
			Fix:          p.Fix().String(),
			TimeVisually: p.Time().Format(models.TimeVisuallyLayout),
		})
		return true
	})

	return models.ImportBatch{Import: imp, Points: points}
}
