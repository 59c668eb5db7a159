package munch

import (
	"errors"
	"strconv"
	"strings"
)

// Coordinate is a latitude/longitude pair in stringified decimal degrees.
// The string form mirrors what browsers hand us from the geolocation API and
// makes "is this set" a plain empty-string check.
type Coordinate struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// ErrPartialCoordinate indicates that exactly one of the two fields is set.
var ErrPartialCoordinate = errors.New("latitude and longitude must both be set or both be empty")

// IsSet reports whether both fields carry a value.
func (c Coordinate) IsSet() bool {
	return c.Latitude != "" && c.Longitude != ""
}

// Validate enforces the both-or-none invariant and checks that set values
// parse as decimal degrees within range.
func (c Coordinate) Validate() error {
	if (c.Latitude == "") != (c.Longitude == "") {
		return ErrPartialCoordinate
	}
	if !c.IsSet() {
		return nil
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(c.Latitude), 64)
	if err != nil || lat < -90 || lat > 90 {
		return errors.New("latitude must be a decimal degree between -90 and 90")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(c.Longitude), 64)
	if err != nil || lng < -180 || lng > 180 {
		return errors.New("longitude must be a decimal degree between -180 and 180")
	}
	return nil
}
