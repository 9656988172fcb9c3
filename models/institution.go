package models

// Row holds one unprocessed data row as read from the source table.
// Cells are keyed by column header; a header absent from the source is absent
// from Cells.
type Row struct {
	Line  int
	Cells map[string]string
}

// Dataset is the ordered table produced by a DatasetSource.
type Dataset struct {
	Source  string
	Headers []string
	Rows    []*Row
}

// Institution is the typed record parsed out of a Row during marker composition.
type Institution struct {
	Name      string
	Rank      float64
	Score     float64
	Latitude  float64
	Longitude float64
	ImageURL  string
}

// Icon is the fixed visual style shared by every marker.
type Icon struct {
	Color  string
	Glyph  string
	Prefix string
}

// Marker is a positioned point annotation carrying rendered popup HTML.
type Marker struct {
	Name      string
	Latitude  float64
	Longitude float64
	PopupHTML string
	Icon      Icon
}

// MarkerOutcome is the result of composing one row. Exactly one of Marker
// and Err is set.
type MarkerOutcome struct {
	Line   int
	Name   string
	Marker *Marker
	Record *Institution
	Err    error
}

// Skipped reports whether the row was left off the map.
func (o MarkerOutcome) Skipped() bool {
	return o.Marker == nil
}

// PlacedMarkers returns the successfully composed markers in dataset order.
func PlacedMarkers(outcomes []MarkerOutcome) []*Marker {
	markers := make([]*Marker, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Marker != nil {
			markers = append(markers, o.Marker)
		}
	}
	return markers
}
