package geoquery

import (
	"errors"
	"math"
	"sort"

	"nearby-weather/internal/types"
)

// ErrInvalidSearchParams is returned when band size or max radius is not positive.
var ErrInvalidSearchParams = errors.New("band size and max radius must be positive")

const earthRadiusMiles = 3958.8

// RankedPoi wraps a POI with its computed distance from the query origin and
// the smallest radius band that contains it. Created fresh per query and
// never mutated after ranking.
type RankedPoi struct {
	Poi           types.PointOfInterest `json:"poi"`
	DistanceMiles float64               `json:"distance_miles"`
	RadiusBand    float64               `json:"radius_band"`
}

// Rank computes the great-circle distance from origin to every candidate,
// drops candidates beyond maxRadius, tags the survivors with their radius
// band, and sorts ascending by distance with POI id as the tie-break.
//
// Pure function of its inputs: identical arguments always yield an identical
// ordered list, which is what makes navigation prefix-stable across radius
// expansions.
func Rank(origin types.Coords, candidates []types.PointOfInterest, maxRadius, bandSize float64) ([]RankedPoi, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if maxRadius <= 0 || bandSize <= 0 {
		return nil, ErrInvalidSearchParams
	}

	ranked := make([]RankedPoi, 0, len(candidates))
	for _, poi := range candidates {
		distance := Haversine(origin, poi.Coordinates)
		if distance > maxRadius {
			// Beyond the search radius the POI does not exist for this query.
			continue
		}
		ranked = append(ranked, RankedPoi{
			Poi:           poi,
			DistanceMiles: distance,
			RadiusBand:    band(distance, bandSize),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceMiles != ranked[j].DistanceMiles {
			return ranked[i].DistanceMiles < ranked[j].DistanceMiles
		}
		return ranked[i].Poi.ID < ranked[j].Poi.ID
	})

	return ranked, nil
}

// band returns the smallest positive multiple of bandSize that is >= distance.
func band(distance, bandSize float64) float64 {
	n := math.Ceil(distance / bandSize)
	if n < 1 {
		n = 1
	}
	return n * bandSize
}

// Haversine computes the great-circle distance between two points in statute miles.
func Haversine(from, to types.Coords) float64 {
	lat1 := toRadians(from.Latitude)
	lon1 := toRadians(from.Longitude)
	lat2 := toRadians(to.Latitude)
	lon2 := toRadians(to.Longitude)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
