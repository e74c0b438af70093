package navigation

// Cursor is the navigation position inside the current ranked POI list plus
// the metadata needed to decide further expansion. Cursors are immutable
// values: every transition returns a new cursor, and a new query discards the
// old cursor wholesale rather than patching it in place.
type Cursor struct {
	Generation    int64   `json:"generation"`
	Index         int     `json:"index"`
	CurrentRadius float64 `json:"current_radius"`
	Count         int     `json:"count"`
	CanExpand     bool    `json:"can_expand"`
}

// AtStart reports whether the cursor sits on the nearest POI.
func (c Cursor) AtStart() bool {
	return c.Index == 0
}

// AtEnd reports whether the cursor sits on the farthest POI currently in range.
func (c Cursor) AtEnd() bool {
	return c.Count == 0 || c.Index == c.Count-1
}
