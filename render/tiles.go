package render

import (
	"fmt"
	"strings"
)

// TileStyle is a base-map tile provider.
type TileStyle struct {
	Name        string
	URL         string
	Attribution string
	Subdomains  string
	MaxZoom     int
}

var tileStyles = []TileStyle{
	{
		Name:        "CartoDB positron",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
		Subdomains:  "abcd",
		MaxZoom:     20,
	},
	{
		Name:        "CartoDB dark_matter",
		URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
		Subdomains:  "abcd",
		MaxZoom:     20,
	},
	{
		Name:        "OpenStreetMap",
		URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		Subdomains:  "abc",
		MaxZoom:     19,
	},
}

// LookupTiles resolves a tile style by name, ignoring case.
func LookupTiles(name string) (TileStyle, error) {
	for _, ts := range tileStyles {
		if strings.EqualFold(ts.Name, strings.TrimSpace(name)) {
			return ts, nil
		}
	}
	return TileStyle{}, fmt.Errorf("unknown tile style %q", name)
}
