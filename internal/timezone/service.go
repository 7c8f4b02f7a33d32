package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

// Service looks up the local time zone of a coordinate.
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
	LocationFor(latitude, longitude float64) (*time.Location, error)
}

type service struct {
	finder tzf.F

	mu        sync.RWMutex
	locations map[string]*time.Location
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService returns the shared timezone service. The finder keeps its polygon
// data in memory, so it is built once per process.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{
			finder:    finder,
			locations: make(map[string]*time.Location),
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA zone name, e.g. "Europe/Rome", for a coordinate.
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}
	return name, nil
}

// LocationFor resolves the zone of a coordinate to a *time.Location.
func (s *service) LocationFor(latitude, longitude float64) (*time.Location, error) {
	name, err := s.GetTimezone(latitude, longitude)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	loc, ok := s.locations[name]
	s.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err = time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %s: %w", name, err)
	}

	s.mu.Lock()
	s.locations[name] = loc
	s.mu.Unlock()
	return loc, nil
}
