package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Industry labels offered by the entry form and requested from the extractor.
const (
	IndustryChristianSchool  = "Christian School"
	IndustryPublicSchool     = "Public School"
	IndustryCatholicSchool   = "Catholic School"
	IndustryCharter          = "Charter"
	IndustryRoofing          = "Roofing"
	IndustryBusinessServices = "Business Services"
)

// DefaultIndustry is preselected on the single-entry form.
const DefaultIndustry = IndustryChristianSchool

// Industries is the fixed category set, in form order.
var Industries = []string{
	IndustryChristianSchool,
	IndustryPublicSchool,
	IndustryCatholicSchool,
	IndustryCharter,
	IndustryRoofing,
	IndustryBusinessServices,
}

// NormalizeIndustry maps a guess onto its canonical label when it matches one
// case-insensitively. Anything else is returned trimmed but otherwise as-is.
func NormalizeIndustry(guess string) string {
	guess = strings.TrimSpace(guess)
	for _, ind := range Industries {
		if strings.EqualFold(guess, ind) {
			return ind
		}
	}
	return guess
}

type Client struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Address   string  `json:"address" yaml:"address"`
	Industry  string  `json:"industry" yaml:"industry"`
	Revenue   float64 `json:"revenue" yaml:"revenue"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Notes     string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// GeocodeResult is what the geocoder returns for a single address.
type GeocodeResult struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Confidence       float64 `json:"confidence"`
	FormattedAddress string  `json:"formattedAddress"`
}

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Validate rejects results that could not be plotted.
func (g GeocodeResult) Validate() error {
	return ValidateCoordinates(g.Latitude, g.Longitude)
}

func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("%w: not a number", ErrInvalidCoordinates)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %f out of range", ErrInvalidCoordinates, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %f out of range", ErrInvalidCoordinates, lng)
	}
	return nil
}

// ExtractedEntity is one row pulled out of free text during bulk import.
type ExtractedEntity struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Industry string `json:"industry"`
}

type StrategicInsight struct {
	Summary         string   `json:"summary" yaml:"summary"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
	Hotspots        []string `json:"hotspots" yaml:"hotspots"`
	RiskAreas       []string `json:"riskAreas" yaml:"riskAreas"`
}
