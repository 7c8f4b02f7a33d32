package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/jengzang/gpx-records/internal/models"
	"github.com/jengzang/gpx-records/internal/repository"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// TrackService handles business logic for track points
type TrackService struct {
	trackRepo *repository.TrackRepository
}

// NewTrackService creates a new track service
func NewTrackService(trackRepo *repository.TrackRepository) *TrackService {
	return &TrackService{
		trackRepo: trackRepo,
	}
}

// GetTrackPoints retrieves track points with filtering and pagination
func (s *TrackService) GetTrackPoints(filter models.TrackPointFilter) (*models.TrackPointsResponse, error) {
	// Validate filter
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	// Get track points from repository
	points, total, err := s.trackRepo.GetTrackPoints(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get track points: %w", err)
	}
	if points == nil {
		points = []models.TrackPoint{}
	}

	// Calculate total pages
	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))

	return &models.TrackPointsResponse{
		Data:       points,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetTrackPointByID retrieves a single track point by ID
func (s *TrackService) GetTrackPointByID(id int64) (*models.TrackPoint, error) {
	point, err := s.trackRepo.GetTrackPointByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get track point: %w", err)
	}
	if point == nil {
		return nil, fmt.Errorf("track point %d: %w", id, ErrNotFound)
	}
	return point, nil
}
