// Package geojson builds the GeoJSON Feature that describes a rectangular
// map selection. Only the shapes this service emits are modeled; it is not a
// general GeoJSON library.
package geojson

// Area is a rectangular map selection in lng/lat order, plus the zoom level
// the selection was made at. Zoom is a pointer so an absent zoom serializes
// as null in the feature properties.
type Area struct {
	MinLng float64  `json:"minLng"`
	MinLat float64  `json:"minLat"`
	MaxLng float64  `json:"maxLng"`
	MaxLat float64  `json:"maxLat"`
	Zoom   *float64 `json:"zoom,omitempty"`
}

// Geometry is a Polygon geometry. Coordinates hold linear rings of
// [lng, lat] positions.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// Properties carries the free-form properties of the feature. Zoom is always
// present in the output, null when the selection had none.
type Properties struct {
	Zoom *float64 `json:"zoom"`
}

// Feature is a GeoJSON Feature with a Polygon geometry.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// FromArea converts a selection into a Feature whose polygon ring is the
// closed five-point rectangle of the selection, wound
// (minLng,minLat) → (maxLng,minLat) → (maxLng,maxLat) → (minLng,maxLat) and
// back to the start.
func FromArea(a Area) Feature {
	ring := [][2]float64{
		{a.MinLng, a.MinLat},
		{a.MaxLng, a.MinLat},
		{a.MaxLng, a.MaxLat},
		{a.MinLng, a.MaxLat},
		{a.MinLng, a.MinLat},
	}
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Polygon",
			Coordinates: [][][2]float64{ring},
		},
		Properties: Properties{Zoom: a.Zoom},
	}
}
