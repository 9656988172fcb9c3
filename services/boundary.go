package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"campus-map/models"
	"campus-map/utils"
)

// BoundaryBuilder reads a GeoJSON boundary file into a renderable overlay.
type BoundaryBuilder struct {
	logger *utils.Logger
}

// NewBoundaryBuilder creates a BoundaryBuilder with the given logger.
func NewBoundaryBuilder(logger *utils.Logger) *BoundaryBuilder {
	return &BoundaryBuilder{logger: logger}
}

// Build reads path, strips an optional UTF-8 BOM and parses the GeoJSON.
// A FeatureCollection is used as is; a single Feature or bare geometry is
// wrapped into a one-feature collection.
func (b *BoundaryBuilder) Build(path string) (*models.BoundaryOverlay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrBoundaryNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", models.ErrBoundaryParse, path, err)
	}

	data, err := decodeUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrBoundaryParse, path, err)
	}

	fc, err := parseBoundary(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrBoundaryParse, path, err)
	}

	b.logger.Info("[boundary] Loaded %d features from %s", len(fc.Features), path)
	return &models.BoundaryOverlay{Source: path, Features: fc}, nil
}

// decodeUTF8 validates raw as UTF-8 and drops a leading byte-order mark.
func decodeUTF8(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, errors.New("file is not valid UTF-8")
	}
	r := transform.NewReader(bytes.NewReader(raw), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return io.ReadAll(r)
}

func parseBoundary(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		return fc, nil

	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		return geojson.NewFeatureCollection().Append(f), nil

	case "Point", "MultiPoint", "LineString", "MultiLineString",
		"Polygon", "MultiPolygon", "GeometryCollection":
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		return geojson.NewFeatureCollection().Append(geojson.NewFeature(g.Geometry())), nil

	case "":
		return nil, errors.New("missing geojson type")
	default:
		return nil, fmt.Errorf("unsupported geojson type %q", head.Type)
	}
}
