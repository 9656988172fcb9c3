package services

import (
	"fmt"
	"html/template"
	"math"
	"regexp"
	"strconv"
	"strings"

	"campus-map/config"
	"campus-map/models"
	"campus-map/utils"
)

// numberRegexp captures the first numeric token of a cell, e.g. "#3" or "1200.50".
var numberRegexp = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

var popupTemplate = template.Must(template.New("popup").Parse(
	`<div style="width:300px; padding:10px;">` +
		`<h4 style="color:#2c3e50; margin-bottom:10px; font-family: Arial, sans-serif;">{{.Name}}</h4>` +
		`<p style="margin:5px 0;"><b>{{.RankLabel}}</b> {{.Rank}}</p>` +
		`<p style="margin:5px 0;"><b>{{.ScoreLabel}}</b> {{.Score}}</p>` +
		`<div style="margin-top:10px; text-align:center;">` +
		`<img src="{{.ImageURL}}" ` +
		`style="max-width:100%; height:200px; object-fit:cover; border-radius:5px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);" ` +
		`onerror="this.onerror=null; this.src={{.Placeholder}};">` +
		`</div>` +
		`</div>`))

type popupData struct {
	Name        string
	RankLabel   string
	Rank        string
	ScoreLabel  string
	Score       string
	ImageURL    string
	Placeholder string
}

// MarkerComposer turns dataset rows into positioned markers with popups.
type MarkerComposer struct {
	logger  *utils.Logger
	columns config.Columns
	popup   config.PopupConfig
	icon    models.Icon
}

// NewMarkerComposer creates a MarkerComposer from the run configuration.
func NewMarkerComposer(cfg *config.Config, logger *utils.Logger) *MarkerComposer {
	return &MarkerComposer{
		logger:  logger,
		columns: cfg.Columns,
		popup:   cfg.Popup,
		icon: models.Icon{
			Color:  cfg.Map.IconColor,
			Glyph:  cfg.Map.IconGlyph,
			Prefix: cfg.Map.IconPrefix,
		},
	}
}

// Compose returns one outcome per row in dataset order. A row that cannot be
// composed is logged and skipped; it never stops the remaining rows.
func (c *MarkerComposer) Compose(ds *models.Dataset) []models.MarkerOutcome {
	outcomes := make([]models.MarkerOutcome, 0, len(ds.Rows))
	names := utils.NewNameSet()

	for _, row := range ds.Rows {
		name := c.displayName(row)
		rec, marker, err := c.composeRow(row)
		if err != nil {
			err = fmt.Errorf("%w: %w", models.ErrRecordComposition, err)
			c.logger.Warn("[composer] Error adding marker for %s: %v", name, err)
			outcomes = append(outcomes, models.MarkerOutcome{Line: row.Line, Name: name, Err: err})
			continue
		}

		if !names.Add(rec.Name) {
			c.logger.Warn("[composer] Duplicate institution name: %s (line %d)", rec.Name, row.Line)
		}
		outcomes = append(outcomes, models.MarkerOutcome{Line: row.Line, Name: name, Marker: marker, Record: rec})
	}

	placed := len(models.PlacedMarkers(outcomes))
	c.logger.Info("[composer] Composed %d → %d markers (skipped %d)",
		len(ds.Rows), placed, len(ds.Rows)-placed)
	return outcomes
}

func (c *MarkerComposer) composeRow(row *models.Row) (*models.Institution, *models.Marker, error) {
	rec, err := c.parseRecord(row)
	if err != nil {
		return nil, nil, err
	}

	html, err := c.renderPopup(rec)
	if err != nil {
		return nil, nil, err
	}

	return rec, &models.Marker{
		Name:      rec.Name,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		PopupHTML: html,
		Icon:      c.icon,
	}, nil
}

func (c *MarkerComposer) parseRecord(row *models.Row) (*models.Institution, error) {
	name, err := cell(row, c.columns.Name)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("column %q is empty", c.columns.Name)
	}

	rec := &models.Institution{Name: name}

	if rec.Rank, err = numericCell(row, c.columns.Rank); err != nil {
		return nil, err
	}
	if rec.Score, err = numericCell(row, c.columns.Score); err != nil {
		return nil, err
	}
	if rec.Latitude, err = coordinateCell(row, c.columns.Latitude); err != nil {
		return nil, err
	}
	if rec.Longitude, err = coordinateCell(row, c.columns.Longitude); err != nil {
		return nil, err
	}
	if rec.ImageURL, err = cell(row, c.columns.Image); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *MarkerComposer) renderPopup(rec *models.Institution) (string, error) {
	image := c.popup.PlaceholderImage
	if rec.ImageURL != "" {
		image = QuoteURL(rec.ImageURL)
	}

	var b strings.Builder
	err := popupTemplate.Execute(&b, popupData{
		Name:        rec.Name,
		RankLabel:   c.popup.RankLabel,
		Rank:        formatNumber(rec.Rank),
		ScoreLabel:  c.popup.ScoreLabel,
		Score:       formatNumber(rec.Score),
		ImageURL:    image,
		Placeholder: c.popup.PlaceholderImage,
	})
	if err != nil {
		return "", fmt.Errorf("render popup: %w", err)
	}
	return b.String(), nil
}

// displayName identifies a row in diagnostics even when its name cell is missing.
func (c *MarkerComposer) displayName(row *models.Row) string {
	if name := row.Cells[c.columns.Name]; name != "" {
		return name
	}
	return fmt.Sprintf("row %d", row.Line)
}

func cell(row *models.Row, column string) (string, error) {
	v, ok := row.Cells[column]
	if !ok {
		return "", fmt.Errorf("missing column %q", column)
	}
	return v, nil
}

// numericCell extracts the first number in the cell, tolerating thousands
// separators and decoration such as "#3".
func numericCell(row *models.Row, column string) (float64, error) {
	raw, err := cell(row, column)
	if err != nil {
		return 0, err
	}
	match := numberRegexp.FindString(strings.ReplaceAll(raw, ",", ""))
	if match == "" {
		return 0, fmt.Errorf("column %q: %q is not numeric", column, raw)
	}
	return strconv.ParseFloat(match, 64)
}

// coordinateCell parses a latitude or longitude verbatim. No range check is applied.
func coordinateCell(row *models.Row, column string) (float64, error) {
	raw, err := cell(row, column)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("column %q: %q is not a coordinate", column, raw)
	}
	return v, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// QuoteURL percent-encodes every byte of s except unreserved characters and
// ':', '/', '?', '='.
func QuoteURL(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isURLSafe(ch) {
			b.WriteByte(ch)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", ch)
	}
	return b.String()
}

func isURLSafe(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	}
	switch ch {
	case '_', '.', '-', '~', ':', '/', '?', '=':
		return true
	}
	return false
}
