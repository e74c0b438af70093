package poisource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"nearby-weather/internal/types"
)

// Static serves a fixed POI set loaded once at startup.
type Static struct {
	pois []types.PointOfInterest
}

// NewStatic creates a source over an in-memory POI set.
func NewStatic(pois []types.PointOfInterest) *Static {
	return &Static{pois: pois}
}

// NewStaticFromFile loads the seed JSON file (an array of POI records).
func NewStaticFromFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read POI seed file: %w", err)
	}

	var pois []types.PointOfInterest
	if err := json.Unmarshal(data, &pois); err != nil {
		return nil, fmt.Errorf("failed to parse POI seed file: %w", err)
	}

	for _, poi := range pois {
		if err := poi.Coordinates.Validate(); err != nil {
			return nil, fmt.Errorf("seed POI %q has invalid coordinates: %w", poi.ID, err)
		}
	}

	return NewStatic(pois), nil
}

// ListPOIs returns the seeded POIs inside region, or all of them when region
// is the zero value.
func (s *Static) ListPOIs(_ context.Context, region types.Bounds) ([]types.PointOfInterest, error) {
	if region.IsZero() {
		out := make([]types.PointOfInterest, len(s.pois))
		copy(out, s.pois)
		return out, nil
	}

	var out []types.PointOfInterest
	for _, poi := range s.pois {
		if region.Contains(poi.Coordinates) {
			out = append(out, poi)
		}
	}
	return out, nil
}
