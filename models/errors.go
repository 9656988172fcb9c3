package models

import "errors"

var (
	// ErrSourceNotFound is returned when the dataset path does not resolve to a readable file.
	ErrSourceNotFound = errors.New("dataset source not found")
	// ErrSourceRead wraps any other dataset read or parse failure.
	ErrSourceRead = errors.New("dataset source read failed")

	ErrBoundaryNotFound = errors.New("boundary file not found")
	ErrBoundaryParse    = errors.New("boundary parse failed")

	// ErrRecordComposition marks a single row that could not become a marker.
	// It is recovered by the composer and never aborts a run.
	ErrRecordComposition = errors.New("record composition failed")

	ErrArtifactWrite = errors.New("artifact write failed")
)
