package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything a single map run needs. It is passed explicitly to
// the pipeline so the run can be repeated with different inputs.
type Config struct {
	DataFile     string
	BoundaryFile string
	OutputFile   string

	// DatasetDSN, when set, replaces DataFile with a PostgreSQL table.
	DatasetDSN   string
	DatasetTable string

	Map     MapConfig
	Columns Columns
	Popup   PopupConfig

	MaxRetries   int
	VerifyRender bool
	ChromeBin    string
	Debug        bool
}

// MapConfig describes the base canvas.
type MapConfig struct {
	CenterLat  float64
	CenterLon  float64
	Zoom       int
	Tiles      string
	IconColor  string
	IconGlyph  string
	IconPrefix string
}

// Columns maps record fields to source header names.
type Columns struct {
	Name      string
	Rank      string
	Score     string
	Latitude  string
	Longitude string
	Image     string
}

// PopupConfig holds the fixed popup wording and image fallback.
type PopupConfig struct {
	RankLabel        string
	ScoreLabel       string
	MaxWidth         int
	PlaceholderImage string
}

// Default returns the configuration of the stock IIT map run.
func Default() *Config {
	return &Config{
		DataFile:     "iit_data.xlsx",
		BoundaryFile: "india_states.json",
		OutputFile:   "final12.html",
		DatasetTable: "institutions",

		Map: MapConfig{
			CenterLat:  20.5937,
			CenterLon:  78.9629,
			Zoom:       5,
			Tiles:      "CartoDB positron",
			IconColor:  "red",
			IconGlyph:  "university",
			IconPrefix: "fa",
		},
		Columns: Columns{
			Name:      "IIT College",
			Rank:      "IIT Ranking",
			Score:     "NIRF Score",
			Latitude:  "Latitude",
			Longitude: "Longitude",
			Image:     "Image",
		},
		Popup: PopupConfig{
			RankLabel:        "Rank among IIT in India:",
			ScoreLabel:       "NIRF Score:",
			MaxWidth:         300,
			PlaceholderImage: "https://via.placeholder.com/300x200?text=Image+Not+Available",
		},

		MaxRetries: 3,
	}
}

// Load reads an optional .env file and overlays environment variables on Default.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, using built-in defaults")
	}
	return FromEnv(Default())
}

// FromEnv overlays environment variables on base and returns it.
func FromEnv(base *Config) *Config {
	c := base

	c.DataFile = getEnv("DATA_FILE", c.DataFile)
	c.BoundaryFile = getEnv("BOUNDARY_FILE", c.BoundaryFile)
	c.OutputFile = getEnv("OUTPUT_FILE", c.OutputFile)
	c.DatasetDSN = getEnv("DATASET_DSN", c.DatasetDSN)
	c.DatasetTable = getEnv("DATASET_TABLE", c.DatasetTable)

	c.Map.CenterLat = getEnvFloat("MAP_CENTER_LAT", c.Map.CenterLat)
	c.Map.CenterLon = getEnvFloat("MAP_CENTER_LON", c.Map.CenterLon)
	c.Map.Zoom = getEnvInt("MAP_ZOOM", c.Map.Zoom)
	c.Map.Tiles = getEnv("MAP_TILES", c.Map.Tiles)
	c.Map.IconColor = getEnv("MARKER_COLOR", c.Map.IconColor)
	c.Map.IconGlyph = getEnv("MARKER_ICON", c.Map.IconGlyph)

	c.Columns.Name = getEnv("COLUMN_NAME", c.Columns.Name)
	c.Columns.Rank = getEnv("COLUMN_RANK", c.Columns.Rank)
	c.Columns.Score = getEnv("COLUMN_SCORE", c.Columns.Score)
	c.Columns.Latitude = getEnv("COLUMN_LATITUDE", c.Columns.Latitude)
	c.Columns.Longitude = getEnv("COLUMN_LONGITUDE", c.Columns.Longitude)
	c.Columns.Image = getEnv("COLUMN_IMAGE", c.Columns.Image)

	c.Popup.RankLabel = getEnv("POPUP_RANK_LABEL", c.Popup.RankLabel)
	c.Popup.ScoreLabel = getEnv("POPUP_SCORE_LABEL", c.Popup.ScoreLabel)
	c.Popup.MaxWidth = getEnvInt("POPUP_MAX_WIDTH", c.Popup.MaxWidth)
	c.Popup.PlaceholderImage = getEnv("PLACEHOLDER_IMAGE", c.Popup.PlaceholderImage)

	c.MaxRetries = getEnvInt("MAX_RETRIES", c.MaxRetries)
	c.VerifyRender = getEnvBool("VERIFY_RENDER", c.VerifyRender)
	c.ChromeBin = getEnv("CHROME_BIN", c.ChromeBin)
	c.Debug = getEnvBool("LOG_DEBUG", c.Debug)

	return c
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
