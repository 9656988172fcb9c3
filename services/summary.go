package services

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"campus-map/models"
	"campus-map/utils"
)

type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

func (s *SummaryService) Generate(rows int, outcomes []models.MarkerOutcome, overlay *models.BoundaryOverlay) *models.RunSummary {
	report := &models.RunSummary{
		RowsRead:         rows,
		BoundaryFeatures: overlay.FeatureCount(),
	}

	var placed []*models.Institution
	for _, o := range outcomes {
		if o.Skipped() {
			report.Skipped = append(report.Skipped, models.SkippedRecord{
				Line:   o.Line,
				Name:   o.Name,
				Reason: skipReason(o.Err),
			})
			continue
		}
		placed = append(placed, o.Record)
	}
	report.MarkersPlaced = len(placed)

	if len(placed) == 0 {
		return report
	}

	// Score stats and best (lowest) rank
	report.MinScore = placed[0].Score
	report.MaxScore = placed[0].Score
	report.BestRanked = placed[0]
	var total float64
	for _, r := range placed {
		total += r.Score
		if r.Score < report.MinScore {
			report.MinScore = r.Score
		}
		if r.Score > report.MaxScore {
			report.MaxScore = r.Score
		}
		if r.Rank < report.BestRanked.Rank {
			report.BestRanked = r
		}
	}
	report.AverageScore = round2(total / float64(len(placed)))

	return report
}

func (s *SummaryService) Print(w io.Writer, r *models.RunSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🗺  MAP RUN SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Rows read          : \033[1m%d\033[0m\n", r.RowsRead)
	fmt.Fprintf(w, "  Markers placed     : \033[1m%d\033[0m\n", r.MarkersPlaced)
	fmt.Fprintf(w, "  Rows skipped       : \033[1m%d\033[0m\n", len(r.Skipped))
	fmt.Fprintf(w, "  Boundary features  : \033[1m%d\033[0m\n", r.BoundaryFeatures)
	fmt.Fprintln(w)

	if r.BestRanked != nil {
		fmt.Fprintf(w, "\033[1;33m  Scores\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Average : \033[1;32m%.2f\033[0m\n", r.AverageScore)
		fmt.Fprintf(w, "  Minimum : \033[1;32m%s\033[0m\n", formatNumber(r.MinScore))
		fmt.Fprintf(w, "  Maximum : \033[1;32m%s\033[0m\n", formatNumber(r.MaxScore))
		fmt.Fprintf(w, "  Best ranked : %s (#%s)\n", truncate(r.BestRanked.Name, 38), formatNumber(r.BestRanked.Rank))
		fmt.Fprintln(w)
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "\033[1;33m  Skipped Rows\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		for _, sk := range r.Skipped {
			fmt.Fprintf(w, "  line %-4d %-28s %s\n", sk.Line, truncate(sk.Name, 28), sk.Reason)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// skipReason drops the composition sentinel prefix for display.
func skipReason(err error) string {
	if err == nil {
		return ""
	}
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range u.Unwrap() {
			if !errors.Is(e, models.ErrRecordComposition) {
				return e.Error()
			}
		}
	}
	return err.Error()
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
