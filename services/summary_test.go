package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"campus-map/models"
)

func sampleOutcomes() []models.MarkerOutcome {
	placed := func(line int, name string, rank, score float64) models.MarkerOutcome {
		return models.MarkerOutcome{
			Line:   line,
			Name:   name,
			Marker: &models.Marker{Name: name},
			Record: &models.Institution{Name: name, Rank: rank, Score: score},
		}
	}
	return []models.MarkerOutcome{
		placed(2, "IIT Delhi", 2, 88.12),
		placed(3, "IIT Madras", 1, 89.46),
		{Line: 4, Name: "IIT Bad", Err: fmt.Errorf("%w: %w", models.ErrRecordComposition, errors.New(`column "Latitude": "north" is not a coordinate`))},
		placed(5, "IIT Roorkee", 6, 71.0),
	}
}

func TestSummaryCounts(t *testing.T) {
	logger, _ := newTestLogger()
	r := NewSummaryService(logger).Generate(4, sampleOutcomes(), nil)

	if r.RowsRead != 4 {
		t.Errorf("RowsRead: got %d, want 4", r.RowsRead)
	}
	if r.MarkersPlaced != 3 {
		t.Errorf("MarkersPlaced: got %d, want 3", r.MarkersPlaced)
	}
	if len(r.Skipped) != 1 || r.Skipped[0].Name != "IIT Bad" || r.Skipped[0].Line != 4 {
		t.Errorf("Skipped: got %+v", r.Skipped)
	}
	if r.Skipped[0].Reason != `column "Latitude": "north" is not a coordinate` {
		t.Errorf("Reason: got %q", r.Skipped[0].Reason)
	}
	if r.BoundaryFeatures != 0 {
		t.Errorf("BoundaryFeatures: got %d, want 0 for nil overlay", r.BoundaryFeatures)
	}
}

func TestSummaryScores(t *testing.T) {
	logger, _ := newTestLogger()
	r := NewSummaryService(logger).Generate(4, sampleOutcomes(), nil)

	if r.AverageScore != 82.86 {
		t.Errorf("AverageScore: got %.2f, want 82.86", r.AverageScore)
	}
	if r.MinScore != 71 || r.MaxScore != 89.46 {
		t.Errorf("Min/Max: got %v/%v", r.MinScore, r.MaxScore)
	}
	if r.BestRanked == nil || r.BestRanked.Name != "IIT Madras" {
		t.Errorf("BestRanked: got %+v", r.BestRanked)
	}
}

func TestSummaryEmptyInput(t *testing.T) {
	logger, _ := newTestLogger()
	r := NewSummaryService(logger).Generate(0, nil, nil)
	if r.MarkersPlaced != 0 || r.BestRanked != nil {
		t.Errorf("expected empty summary, got %+v", r)
	}
}

func TestSummaryPrint(t *testing.T) {
	logger, _ := newTestLogger()
	svc := NewSummaryService(logger)

	var out bytes.Buffer
	svc.Print(&out, svc.Generate(4, sampleOutcomes(), nil))

	for _, want := range []string{"MAP RUN SUMMARY", "IIT Madras (#1)", "IIT Bad"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary output missing %q:\n%s", want, out.String())
		}
	}
}
