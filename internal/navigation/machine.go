package navigation

import "nearby-weather/internal/geoquery"

// RankFn recomputes the ranked list for a given radius. Ranking is
// deterministic for fixed origin and candidates, so the previous list is
// always a prefix of the recomputed one.
type RankFn func(radius float64) ([]geoquery.RankedPoi, error)

// State pairs a cursor with the ranked list backing it. Both are treated as
// immutable values; transitions return a new State.
type State struct {
	Cursor Cursor
	Ranked []geoquery.RankedPoi
}

// Machine implements the closer/farther/expand transitions over a State.
// It performs no I/O itself; radius expansion re-ranks through the injected
// RankFn.
type Machine struct {
	bandSize  float64
	maxRadius float64
	rank      RankFn
}

func NewMachine(bandSize, maxRadius float64, rank RankFn) *Machine {
	return &Machine{
		bandSize:  bandSize,
		maxRadius: maxRadius,
		rank:      rank,
	}
}

// Closer steps toward the nearest POI, flooring at index 0.
func (m *Machine) Closer(s State) State {
	if !s.Cursor.AtStart() {
		s.Cursor.Index--
	}
	return s
}

// Farther steps toward the farthest POI. At the end of the list it widens the
// search radius when possible; the boolean is the NoMoreResults signal raised
// when the boundary is final. NoMoreResults is informational, not an error.
func (m *Machine) Farther(s State) (State, bool, error) {
	if !s.Cursor.AtEnd() {
		s.Cursor.Index++
		return s, false, nil
	}
	if !s.Cursor.CanExpand {
		return s, true, nil
	}
	return m.expand(s)
}

// Expand is the manual "search wider" trigger, usable from any index, with
// the same semantics as the automatic expansion branch of Farther. Once the
// radius has reached its maximum the call is an idempotent no-op.
func (m *Machine) Expand(s State) (State, bool, error) {
	if !s.Cursor.CanExpand {
		return s, true, nil
	}
	return m.expand(s)
}

// expand widens the radius band by band until at least one previously-unseen
// POI appears or the maximum radius is reached. When new POIs appear the
// cursor lands on the first of them, so expansion never leaves the cursor
// stuck on a POI the user has already seen.
func (m *Machine) expand(s State) (State, bool, error) {
	radius := s.Cursor.CurrentRadius
	prevCount := s.Cursor.Count
	ranked := s.Ranked

	for radius < m.maxRadius && len(ranked) == prevCount {
		radius += m.bandSize
		if radius > m.maxRadius {
			radius = m.maxRadius
		}
		var err error
		ranked, err = m.rank(radius)
		if err != nil {
			return s, false, err
		}
	}

	s.Cursor.CurrentRadius = radius
	s.Cursor.Count = len(ranked)
	s.Cursor.CanExpand = radius < m.maxRadius
	s.Ranked = ranked

	if len(ranked) == prevCount {
		// Nothing new even at the widest radius.
		return s, true, nil
	}

	s.Cursor.Index = prevCount
	return s, false, nil
}
