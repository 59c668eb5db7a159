package service

import (
	"context"
	"fmt"

	"github.com/munch-hunt/api/internal/filter"
	"github.com/munch-hunt/api/internal/munch"
)

// RestaurantFinder is the slice of the directory gateway the restaurant
// service needs.
type RestaurantFinder interface {
	SearchRestaurants(ctx context.Context, food, latitude, longitude string) ([]munch.Restaurant, error)
	GetBusiness(ctx context.Context, businessID string) (munch.BusinessDetail, error)
}

// RestaurantsService searches the directory around a location and applies the
// result-list filters server side.
type RestaurantsService struct {
	directory RestaurantFinder
}

// NewRestaurantsService creates a new instance of RestaurantsService.
func NewRestaurantsService(directory RestaurantFinder) *RestaurantsService {
	return &RestaurantsService{directory: directory}
}

// Search fetches restaurants matching the food term near the coordinates and
// applies the filter state to the result list.
func (s *RestaurantsService) Search(ctx context.Context, food string, coords munch.Coordinate, state filter.State) ([]munch.Restaurant, error) {
	if food == "" {
		return nil, fmt.Errorf("food term is required")
	}
	if !coords.IsSet() {
		return nil, fmt.Errorf("coordinates are required")
	}

	restaurants, err := s.directory.SearchRestaurants(ctx, food, coords.Latitude, coords.Longitude)
	if err != nil {
		return nil, err
	}
	return filter.Apply(restaurants, state), nil
}

// Business fetches the detail record for a single listing.
func (s *RestaurantsService) Business(ctx context.Context, businessID string) (munch.BusinessDetail, error) {
	if businessID == "" {
		return munch.BusinessDetail{}, fmt.Errorf("business id is required")
	}
	return s.directory.GetBusiness(ctx, businessID)
}
