package models

// RunSummary holds the figures reported at the end of a successful run.
type RunSummary struct {
	OutputPath       string
	RowsRead         int
	MarkersPlaced    int
	Skipped          []SkippedRecord
	BoundaryFeatures int

	BestRanked   *Institution
	AverageScore float64
	MinScore     float64
	MaxScore     float64
}

// SkippedRecord names a row that was left off the map and why.
type SkippedRecord struct {
	Line   int
	Name   string
	Reason string
}
