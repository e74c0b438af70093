package poisource

import (
	"context"

	"nearby-weather/internal/types"
)

// Source supplies POI records for a bounding region. The navigation core
// never fetches or caches POIs itself; the source is an external collaborator.
type Source interface {
	// ListPOIs returns the POIs inside region. A zero-value region means no
	// regional filter.
	ListPOIs(ctx context.Context, region types.Bounds) ([]types.PointOfInterest, error)
}
