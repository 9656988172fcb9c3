package models

import "github.com/paulmach/orb/geojson"

// BoundaryOverlay wraps the parsed country/region outline drawn beneath the markers.
type BoundaryOverlay struct {
	Source   string
	Features *geojson.FeatureCollection
}

// FeatureCount returns the number of features in the overlay.
func (b *BoundaryOverlay) FeatureCount() int {
	if b == nil || b.Features == nil {
		return 0
	}
	return len(b.Features.Features)
}
