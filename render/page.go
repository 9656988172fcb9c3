package render

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.css">
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/4.7.0/css/font-awesome.min.css">
    <script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
    <script src="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.js"></script>
    <style>
        html, body { width: 100%; height: 100%; margin: 0; padding: 0; }
        #map { position: absolute; top: 0; bottom: 0; left: 0; right: 0; }
    </style>
{{- range .Styles}}
    <style>{{.}}</style>
{{- end}}
</head>
<body>
    <div id="map"></div>
    <script>
        (function () {
            var map = L.map("map", {
                center: [{{.Canvas.CenterLat}}, {{.Canvas.CenterLon}}],
                zoom: {{.Canvas.Zoom}}
            });
            L.tileLayer({{.Canvas.Tiles.URL}}, {
                attribution: {{.Canvas.Tiles.Attribution}},
                subdomains: {{.Canvas.Tiles.Subdomains}},
                maxZoom: {{.Canvas.Tiles.MaxZoom}}
            }).addTo(map);

            var group = L.featureGroup().addTo(map);
{{- if .Boundary}}
            L.geoJSON({{.Boundary}}).addTo(group);
{{- end}}

            var markers = {{.Markers}};
            markers.forEach(function (m) {
                L.marker([m.lat, m.lng], {
                    icon: L.AwesomeMarkers.icon({icon: m.icon.glyph, markerColor: m.icon.color, prefix: m.icon.prefix})
                }).bindPopup(m.popup, {maxWidth: {{.PopupMaxWidth}}, className: {{.PopupClass}}}).addTo(group);
            });
        })();
    </script>
</body>
</html>
`))
