package mapview

import (
	"testing"

	"github.com/BerylCAtieno/strategy-mapper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = Defaults{Center: LatLng{Lat: 27.2730, Lng: -80.3582}, Zoom: 12}

func TestDiagonal(t *testing.T) {
	point := LatLng{Lat: 27.27, Lng: -80.35}
	assert.Equal(t, 0.0, diagonal(Bounds{SouthWest: point, NorthEast: point}))

	// One degree of latitude is about 111.2 km.
	assert.InDelta(t, 111195, diagonal(Bounds{NorthEast: LatLng{Lat: 1}}), 50)

	// Antipodal corners span half the circumference.
	half := diagonal(Bounds{SouthWest: LatLng{Lat: -45, Lng: -90}, NorthEast: LatLng{Lat: 45, Lng: 90}})
	assert.InDelta(t, earthCircumference/2, half, 1)

	city := Bounds{SouthWest: LatLng{Lat: 27.2600, Lng: -80.3920}, NorthEast: LatLng{Lat: 27.2850, Lng: -80.3500}}
	assert.InDelta(t, 4996, diagonal(city), 5)
}

func TestBuildEmptyUsesDefaults(t *testing.T) {
	v, err := Build(nil, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults.Center, v.Center)
	assert.Equal(t, 12, v.Zoom)
	assert.Nil(t, v.Bounds)
	assert.NotNil(t, v.Markers)
	assert.Empty(t, v.Markers)
}

func TestBuildFitsDemoData(t *testing.T) {
	v, err := Build(models.DemoClients(), defaults)
	require.NoError(t, err)

	require.Len(t, v.Markers, 3)
	assert.Equal(t, "slater-1", v.Markers[0].ID)
	assert.Equal(t, LatLng{Lat: 27.2796, Lng: -80.3920}, v.Markers[0].Position)

	require.NotNil(t, v.Bounds)
	assert.Equal(t, LatLng{Lat: 27.25, Lng: -80.392}, v.Bounds.SouthWest)
	assert.Equal(t, LatLng{Lat: 27.285, Lng: -80.35}, v.Bounds.NorthEast)
	assert.InDelta(t, 27.2675, v.Center.Lat, 1e-9)
	assert.InDelta(t, -80.371, v.Center.Lng, 1e-9)

	// The demo entries sit a few kilometers apart.
	assert.GreaterOrEqual(t, v.Zoom, 11)
	assert.LessOrEqual(t, v.Zoom, 14)
}

func TestBuildSingleMarker(t *testing.T) {
	v, err := Build(models.DemoClients()[:1], defaults)
	require.NoError(t, err)
	assert.Equal(t, singleZoom, v.Zoom)
	assert.Equal(t, LatLng{Lat: 27.2796, Lng: -80.3920}, v.Center)
}

func TestZoomClamps(t *testing.T) {
	world := Bounds{SouthWest: LatLng{Lat: -60, Lng: -170}, NorthEast: LatLng{Lat: 70, Lng: 170}}
	assert.Equal(t, minZoom, zoomFor(world))

	tiny := Bounds{SouthWest: LatLng{Lat: 27, Lng: -80}, NorthEast: LatLng{Lat: 27.00002, Lng: -80}}
	assert.Equal(t, maxZoom, zoomFor(tiny))
}

func TestPopupEscapesHTML(t *testing.T) {
	clients := []models.Client{{
		ID:        "x",
		Name:      `<script>alert("hi")</script>`,
		Industry:  "Roofing & Repair",
		Address:   "1 Main St",
		Latitude:  1,
		Longitude: 1,
	}}
	v, err := Build(clients, defaults)
	require.NoError(t, err)

	popup := v.Markers[0].Popup
	assert.NotContains(t, popup, "<script>")
	assert.Contains(t, popup, "&lt;script&gt;")
	assert.Contains(t, popup, "Roofing &amp; Repair")
	assert.Equal(t, `<script>alert("hi")</script>`, v.Markers[0].Name)
}
