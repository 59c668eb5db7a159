package service

import (
	"context"
	"log"

	"github.com/munch-hunt/api/internal/hunt"
	"github.com/munch-hunt/api/internal/munch"
)

// CategoryLister is the slice of the directory gateway the category service
// needs.
type CategoryLister interface {
	NearbyCategoryTitles(ctx context.Context, latitude, longitude string) ([]string, error)
}

// CategoriesService produces the cuisine list offered on the selection
// screen.
type CategoriesService struct {
	directory CategoryLister
}

// NewCategoriesService creates a new instance of CategoriesService.
func NewCategoriesService(directory CategoryLister) *CategoriesService {
	return &CategoriesService{directory: directory}
}

// Nearby returns the cuisines available around the given coordinates. A
// failing or empty live lookup degrades to the static default list; the
// caller always receives a non-empty slice and never an error.
func (s *CategoriesService) Nearby(ctx context.Context, coords munch.Coordinate) []string {
	if !coords.IsSet() {
		return hunt.DefaultCuisines
	}

	titles, err := s.directory.NearbyCategoryTitles(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		log.Printf("nearby category lookup failed lat=%s lng=%s err=%v", coords.Latitude, coords.Longitude, err)
		return hunt.DefaultCuisines
	}
	return hunt.NearbyCuisines(titles)
}
