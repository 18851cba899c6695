// Package geogrid buckets continuous coordinates into fixed-size grid cells and
// maps cell identifiers back to their bounds. All functions are pure.
package geogrid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

// GridSize is the cell edge in degrees, roughly 1 km at the equator.
const GridSize = 0.01

// ZoneID maps a coordinate to its cell identifier, formatted as
// zone_{latGrid}_{lngGrid}. Grid indices use floor division so that negative
// coordinates group toward negative infinity rather than toward zero.
func ZoneID(lat, lng float64) (string, error) {
	if lat < -90 || lat > 90 {
		return "", fmt.Errorf("geogrid.ZoneID: latitude must be between -90 and 90, got %v: %w", lat, e.ErrInvalidCoordinates)
	}
	if lng < -180 || lng > 180 {
		return "", fmt.Errorf("geogrid.ZoneID: longitude must be between -180 and 180, got %v: %w", lng, e.ErrInvalidCoordinates)
	}

	latGrid := int(math.Floor(lat / GridSize))
	lngGrid := int(math.Floor(lng / GridSize))

	return fmt.Sprintf("zone_%d_%d", latGrid, lngGrid), nil
}

// Bounds parses a cell identifier back into the rectangle it covers. The
// contract with ZoneID is half-open containment: south <= lat < north and
// west <= lng < east.
func Bounds(zoneID string) (domain.GeoBounds, error) {
	latGrid, lngGrid, err := parse(zoneID)
	if err != nil {
		return domain.GeoBounds{}, err
	}

	return domain.GeoBounds{
		South: float64(latGrid) * GridSize,
		North: float64(latGrid+1) * GridSize,
		West:  float64(lngGrid) * GridSize,
		East:  float64(lngGrid+1) * GridSize,
	}, nil
}

// Center returns the midpoint of a cell, used to recreate a zone from a bare
// identifier through the same path coordinates take.
func Center(zoneID string) (lat, lng float64, err error) {
	latGrid, lngGrid, err := parse(zoneID)
	if err != nil {
		return 0, 0, err
	}
	return (float64(latGrid) + 0.5) * GridSize, (float64(lngGrid) + 0.5) * GridSize, nil
}

func parse(zoneID string) (latGrid, lngGrid int, err error) {
	parts := strings.Split(zoneID, "_")
	if len(parts) != 3 || parts[0] != "zone" {
		return 0, 0, fmt.Errorf("geogrid.parse: %q: %w", zoneID, e.ErrInvalidZoneID)
	}
	latGrid, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("geogrid.parse: %q: %w", zoneID, e.ErrInvalidZoneID)
	}
	lngGrid, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("geogrid.parse: %q: %w", zoneID, e.ErrInvalidZoneID)
	}
	return latGrid, lngGrid, nil
}
