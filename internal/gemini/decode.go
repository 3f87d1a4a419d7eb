package gemini

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/BerylCAtieno/strategy-mapper/internal/models"
)

// stripCodeFence removes a ```json fence some models wrap around JSON even
// when a JSON MIME type was requested.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

type geocodePayload struct {
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Confidence       float64  `json:"confidence"`
	FormattedAddress string   `json:"formattedAddress"`
}

func decodeGeocode(text string) (*models.GeocodeResult, error) {
	var p geocodePayload
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &p); err != nil {
		return nil, err
	}
	if p.Latitude == nil || p.Longitude == nil {
		return nil, errors.New("response is missing coordinates")
	}

	res := &models.GeocodeResult{
		Latitude:         *p.Latitude,
		Longitude:        *p.Longitude,
		Confidence:       p.Confidence,
		FormattedAddress: strings.TrimSpace(p.FormattedAddress),
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeEntities(text string) ([]models.ExtractedEntity, error) {
	var entities []models.ExtractedEntity
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &entities); err != nil {
		return nil, err
	}
	for i := range entities {
		entities[i].Name = strings.TrimSpace(entities[i].Name)
		entities[i].Address = strings.TrimSpace(entities[i].Address)
		entities[i].Industry = strings.TrimSpace(entities[i].Industry)
	}
	return entities, nil
}

func decodeInsight(text string) (*models.StrategicInsight, error) {
	var insight models.StrategicInsight
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &insight); err != nil {
		return nil, err
	}
	if insight.Recommendations == nil {
		insight.Recommendations = []string{}
	}
	if insight.Hotspots == nil {
		insight.Hotspots = []string{}
	}
	if insight.RiskAreas == nil {
		insight.RiskAreas = []string{}
	}
	return &insight, nil
}
