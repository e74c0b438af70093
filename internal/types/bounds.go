package types

// Bounds is the visible geographic box of the map presentation layer,
// owned entirely outside this core.
type Bounds struct {
	SouthWest Coords `json:"south_west"`
	NorthEast Coords `json:"north_east"`
}

// IsZero reports whether no bounds were supplied.
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

// Contains reports whether p falls inside the box. A box whose western edge
// is east of its eastern edge is treated as crossing the antimeridian.
func (b Bounds) Contains(p Coords) bool {
	if p.Latitude < b.SouthWest.Latitude || p.Latitude > b.NorthEast.Latitude {
		return false
	}
	if b.SouthWest.Longitude <= b.NorthEast.Longitude {
		return p.Longitude >= b.SouthWest.Longitude && p.Longitude <= b.NorthEast.Longitude
	}
	return p.Longitude >= b.SouthWest.Longitude || p.Longitude <= b.NorthEast.Longitude
}
