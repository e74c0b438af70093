package types

// Category classifies a point of interest by outdoor site type.
type Category string

const (
	CategoryPark         Category = "park"
	CategoryTrail        Category = "trail"
	CategoryLake         Category = "lake"
	CategoryForest       Category = "forest"
	CategoryNatureCenter Category = "nature_center"
)

// Valid reports whether the category is one of the known site types.
// The empty category is valid as "no filter".
func (c Category) Valid() bool {
	switch c {
	case "", CategoryPark, CategoryTrail, CategoryLake, CategoryForest, CategoryNatureCenter:
		return true
	}
	return false
}

// PointOfInterest is a candidate destination supplied by the external POI
// source. Records are immutable after creation; the core references them for
// the duration of one query and never copies or mutates them.
type PointOfInterest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Coordinates Coords   `json:"coordinates"`
}
