package render

import (
	"bufio"
	"fmt"
	"html/template"
	"io"

	"github.com/paulmach/orb/geojson"

	"campus-map/config"
	"campus-map/models"
)

// Canvas is the base map: where it is centered and which tiles it draws.
type Canvas struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
	Tiles     TileStyle
}

// Document is the in-memory map artifact. It is built up by the assembler and
// rendered once.
type Document struct {
	Title         string
	canvas        Canvas
	popupMaxWidth int
	styles        []template.CSS
	overlay       *models.BoundaryOverlay
	markers       []*models.Marker
}

// NewDocument creates an empty document on the configured canvas.
func NewDocument(mc config.MapConfig, popupMaxWidth int) (*Document, error) {
	tiles, err := LookupTiles(mc.Tiles)
	if err != nil {
		return nil, err
	}
	return &Document{
		Title: "Institution Map",
		canvas: Canvas{
			CenterLat: mc.CenterLat,
			CenterLon: mc.CenterLon,
			Zoom:      mc.Zoom,
			Tiles:     tiles,
		},
		popupMaxWidth: popupMaxWidth,
	}, nil
}

// AddStyle injects a stylesheet block into the page head.
func (d *Document) AddStyle(css template.CSS) {
	d.styles = append(d.styles, css)
}

// SetOverlay attaches the boundary outline.
func (d *Document) SetOverlay(o *models.BoundaryOverlay) {
	d.overlay = o
}

// AddMarkers attaches markers in the order given.
func (d *Document) AddMarkers(markers ...*models.Marker) {
	d.markers = append(d.markers, markers...)
}

func (d *Document) MarkerCount() int {
	return len(d.markers)
}

type iconJS struct {
	Color  string `json:"color"`
	Glyph  string `json:"glyph"`
	Prefix string `json:"prefix"`
}

type markerJS struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup"`
	Icon  iconJS  `json:"icon"`
}

type pageData struct {
	Title         string
	Canvas        Canvas
	Styles        []template.CSS
	Boundary      *geojson.FeatureCollection
	Markers       []markerJS
	PopupMaxWidth int
	PopupClass    string
}

// Render writes the complete HTML page to w. Output depends only on the
// document contents.
func (d *Document) Render(w io.Writer) error {
	data := pageData{
		Title:         d.Title,
		Canvas:        d.canvas,
		Styles:        d.styles,
		Markers:       make([]markerJS, 0, len(d.markers)),
		PopupMaxWidth: d.popupMaxWidth,
		PopupClass:    PopupClass,
	}
	if d.overlay != nil {
		data.Boundary = d.overlay.Features
	}
	for _, m := range d.markers {
		data.Markers = append(data.Markers, markerJS{
			Lat:   m.Latitude,
			Lng:   m.Longitude,
			Popup: m.PopupHTML,
			Icon:  iconJS{Color: m.Icon.Color, Glyph: m.Icon.Glyph, Prefix: m.Icon.Prefix},
		})
	}

	bw := bufio.NewWriter(w)
	if err := pageTemplate.Execute(bw, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return bw.Flush()
}
