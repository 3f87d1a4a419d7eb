// Package mapview turns the visible clients into what the map widget needs:
// a center, a zoom level, fit bounds and one marker per client.
package mapview

import (
	"bytes"
	"html/template"
	"math"

	"github.com/BerylCAtieno/strategy-mapper/internal/models"
)

const (
	minZoom = 2
	maxZoom = 18
	// singleZoom is used when every marker sits on the same spot.
	singleZoom = 15

	earthRadius        = 6371000.0 // meters
	earthCircumference = 2 * math.Pi * earthRadius
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Bounds struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
}

type Marker struct {
	ID       string `json:"id"`
	Position LatLng `json:"position"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Address  string `json:"address"`
	// Popup is escaped HTML ready to bind to the marker.
	Popup string `json:"popup"`
}

type View struct {
	Center  LatLng   `json:"center"`
	Zoom    int      `json:"zoom"`
	Bounds  *Bounds  `json:"bounds,omitempty"`
	Markers []Marker `json:"markers"`
}

// Defaults is the view used when there is nothing to fit.
type Defaults struct {
	Center LatLng
	Zoom   int
}

var popupTmpl = template.Must(template.New("popup").Parse(
	`<div class="client-popup"><h3>{{.Name}}</h3><p class="industry">{{.Industry}}</p><p class="address">{{.Address}}</p></div>`,
))

// Build fits the view to clients, falling back to d when clients is empty.
func Build(clients []models.Client, d Defaults) (View, error) {
	v := View{Center: d.Center, Zoom: d.Zoom, Markers: make([]Marker, 0, len(clients))}

	var buf bytes.Buffer
	for _, c := range clients {
		buf.Reset()
		if err := popupTmpl.Execute(&buf, c); err != nil {
			return View{}, err
		}
		v.Markers = append(v.Markers, Marker{
			ID:       c.ID,
			Position: LatLng{Lat: c.Latitude, Lng: c.Longitude},
			Name:     c.Name,
			Industry: c.Industry,
			Address:  c.Address,
			Popup:    buf.String(),
		})
	}

	if len(clients) == 0 {
		return v, nil
	}

	b := fit(clients)
	v.Bounds = &b
	v.Center = LatLng{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lng: (b.SouthWest.Lng + b.NorthEast.Lng) / 2,
	}
	v.Zoom = zoomFor(b)
	return v, nil
}

func fit(clients []models.Client) Bounds {
	b := Bounds{
		SouthWest: LatLng{Lat: clients[0].Latitude, Lng: clients[0].Longitude},
		NorthEast: LatLng{Lat: clients[0].Latitude, Lng: clients[0].Longitude},
	}
	for _, c := range clients[1:] {
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, c.Latitude)
		b.SouthWest.Lng = math.Min(b.SouthWest.Lng, c.Longitude)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, c.Latitude)
		b.NorthEast.Lng = math.Max(b.NorthEast.Lng, c.Longitude)
	}
	return b
}

// zoomFor picks the deepest web-mercator zoom whose world width still
// covers the diagonal of b.
func zoomFor(b Bounds) int {
	span := diagonal(b)
	if span < 1 {
		return singleZoom
	}
	z := int(math.Floor(math.Log2(earthCircumference / span)))
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

// diagonal is the great-circle length in meters from the south-west corner
// of b to its north-east corner.
func diagonal(b Bounds) float64 {
	south, north := radians(b.SouthWest.Lat), radians(b.NorthEast.Lat)
	h := hav(north-south) + math.Cos(south)*math.Cos(north)*hav(radians(b.NorthEast.Lng-b.SouthWest.Lng))
	return 2 * earthRadius * math.Asin(math.Sqrt(math.Min(1, h)))
}

func hav(theta float64) float64 {
	return (1 - math.Cos(theta)) / 2
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
