package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"campus-map/config"
	"campus-map/models"
	"campus-map/utils"
)

func newTestLogger() (*utils.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return utils.NewLoggerTo(&buf, &buf), &buf
}

func iitRow(line int, name, rank, score, lat, lon, image string) *models.Row {
	return &models.Row{Line: line, Cells: map[string]string{
		"IIT College": name,
		"IIT Ranking": rank,
		"NIRF Score":  score,
		"Latitude":    lat,
		"Longitude":   lon,
		"Image":       image,
	}}
}

func TestQuoteURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"http://x/a b.png", "http://x/a%20b.png"},
		{"https://x/img?id=3", "https://x/img?id=3"},
		{"https://x/a&b#frag", "https://x/a%26b%23frag"},
		{"https://x/é.jpg", "https://x/%C3%A9.jpg"},
		{"https://x/~user/a_b-c.png", "https://x/~user/a_b-c.png"},
		{"https://x/100%.png", "https://x/100%25.png"},
	}

	for _, tt := range tests {
		if got := QuoteURL(tt.raw); got != tt.want {
			t.Errorf("QuoteURL(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestComposePopupContent(t *testing.T) {
	logger, _ := newTestLogger()
	c := NewMarkerComposer(config.Default(), logger)

	ds := &models.Dataset{Rows: []*models.Row{
		iitRow(2, "IIT Madras", "1", "89.46", "12.9916", "80.2336", "http://x/a b.png"),
	}}
	outcomes := c.Compose(ds)
	if len(outcomes) != 1 || outcomes[0].Skipped() {
		t.Fatalf("expected one placed marker, got %+v", outcomes)
	}

	m := outcomes[0].Marker
	if m.Latitude != 12.9916 || m.Longitude != 80.2336 {
		t.Errorf("position: got (%v, %v)", m.Latitude, m.Longitude)
	}
	if m.Icon != (models.Icon{Color: "red", Glyph: "university", Prefix: "fa"}) {
		t.Errorf("icon: got %+v", m.Icon)
	}

	for _, want := range []string{
		`>IIT Madras</h4>`,
		`<b>Rank among IIT in India:</b> 1</p>`,
		`<b>NIRF Score:</b> 89.46</p>`,
		`src="http://x/a%20b.png"`,
		`onerror="this.onerror=null; this.src=`,
		`via.placeholder.com`,
	} {
		if !strings.Contains(m.PopupHTML, want) {
			t.Errorf("popup missing %q:\n%s", want, m.PopupHTML)
		}
	}
}

func TestComposeEscapesNameAndUsesPlaceholderForEmptyImage(t *testing.T) {
	logger, _ := newTestLogger()
	c := NewMarkerComposer(config.Default(), logger)

	ds := &models.Dataset{Rows: []*models.Row{
		iitRow(2, "Arts & <Science>", "#3", "1,200.5", "10", "20", ""),
	}}
	m := c.Compose(ds)[0].Marker
	if m == nil {
		t.Fatal("expected marker")
	}
	if !strings.Contains(m.PopupHTML, "Arts &amp; &lt;Science&gt;") {
		t.Errorf("name not escaped:\n%s", m.PopupHTML)
	}
	if !strings.Contains(m.PopupHTML, "</b> 3</p>") || !strings.Contains(m.PopupHTML, "</b> 1200.5</p>") {
		t.Errorf("rank/score not normalised:\n%s", m.PopupHTML)
	}
	if !strings.Contains(m.PopupHTML, `src="https://via.placeholder.com/300x200?text=Image`) {
		t.Errorf("placeholder not used for empty image:\n%s", m.PopupHTML)
	}
}

func TestComposeSkipsBadRowsOnly(t *testing.T) {
	logger, logs := newTestLogger()
	c := NewMarkerComposer(config.Default(), logger)

	missingLon := iitRow(4, "IIT NoLon", "3", "80", "19.1", "", "http://x/c.png")
	delete(missingLon.Cells, "Longitude")

	ds := &models.Dataset{Rows: []*models.Row{
		iitRow(2, "IIT Madras", "1", "89.46", "12.99", "80.23", "http://x/a.png"),
		iitRow(3, "IIT Bad", "2", "88", "north", "77.19", "http://x/b.png"),
		missingLon,
		iitRow(5, "IIT NaN", "4", "70", "NaN", "70", ""),
		iitRow(6, "IIT Delhi", "2", "88.12", "28.54", "77.19", "http://x/d.png"),
	}}

	outcomes := c.Compose(ds)
	if len(outcomes) != len(ds.Rows) {
		t.Fatalf("outcomes: got %d, want %d", len(outcomes), len(ds.Rows))
	}

	markers := models.PlacedMarkers(outcomes)
	if len(markers) != 2 {
		t.Fatalf("placed: got %d, want 2", len(markers))
	}
	if markers[0].Name != "IIT Madras" || markers[1].Name != "IIT Delhi" {
		t.Errorf("order not preserved: %s, %s", markers[0].Name, markers[1].Name)
	}

	for _, i := range []int{1, 2, 3} {
		o := outcomes[i]
		if !o.Skipped() {
			t.Errorf("row %d should be skipped", o.Line)
		}
		if !errors.Is(o.Err, models.ErrRecordComposition) {
			t.Errorf("row %d: expected ErrRecordComposition, got %v", o.Line, o.Err)
		}
	}
	if !strings.Contains(logs.String(), "Error adding marker for IIT Bad") {
		t.Errorf("diagnostic should name the record, logs:\n%s", logs.String())
	}
}

func TestComposeMissingNameUsesLineInDiagnostic(t *testing.T) {
	logger, logs := newTestLogger()
	c := NewMarkerComposer(config.Default(), logger)

	row := iitRow(7, "", "1", "1", "1", "1", "")
	outcomes := c.Compose(&models.Dataset{Rows: []*models.Row{row}})
	if !outcomes[0].Skipped() {
		t.Fatal("row without a name should be skipped")
	}
	if outcomes[0].Name != "row 7" {
		t.Errorf("name: got %q, want %q", outcomes[0].Name, "row 7")
	}
	if !strings.Contains(logs.String(), "row 7") {
		t.Errorf("diagnostic missing row reference:\n%s", logs.String())
	}
}

func TestComposeDuplicateNamesWarnButPlace(t *testing.T) {
	logger, logs := newTestLogger()
	c := NewMarkerComposer(config.Default(), logger)

	ds := &models.Dataset{Rows: []*models.Row{
		iitRow(2, "IIT Twin", "1", "1", "1", "1", ""),
		iitRow(3, "IIT Twin", "2", "2", "2", "2", ""),
	}}
	if n := len(models.PlacedMarkers(c.Compose(ds))); n != 2 {
		t.Errorf("placed: got %d, want 2", n)
	}
	if !strings.Contains(logs.String(), "Duplicate institution name: IIT Twin") {
		t.Errorf("expected duplicate warning, logs:\n%s", logs.String())
	}
}
